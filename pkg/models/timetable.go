package models

// EventStatus is the status of an arrival or departure event
type EventStatus string

const (
	EventStatusPlanned   EventStatus = "p"
	EventStatusAdded     EventStatus = "a"
	EventStatusCancelled EventStatus = "c"
)

// TripType classifies a trip
type TripType string

const (
	TripTypeP TripType = "p"
	TripTypeE TripType = "e"
	TripTypeZ TripType = "z"
	TripTypeS TripType = "s"
	TripTypeH TripType = "h"
	TripTypeN TripType = "n"
)

// ConnectionStatus is the status of a connection: waiting, transition or alternative
type ConnectionStatus string

const (
	ConnectionStatusWaiting     ConnectionStatus = "w"
	ConnectionStatusTransition  ConnectionStatus = "n"
	ConnectionStatusAlternative ConnectionStatus = "a"
)

// DelaySource names the origin of a delay message
type DelaySource string

const (
	DelaySourceLeibit             DelaySource = "L"
	DelaySourceRisneAutomatic     DelaySource = "NA"
	DelaySourceRisneManual        DelaySource = "NM"
	DelaySourceVDV                DelaySource = "V"
	DelaySourceIstpAutomatic      DelaySource = "IA"
	DelaySourceIstpManual         DelaySource = "IM"
	DelaySourceAutomaticPrognosis DelaySource = "A"
)

// ReferenceTripRelationType describes where a reference trip meets a stop
type ReferenceTripRelationType string

const (
	RelationBefore  ReferenceTripRelationType = "b"
	RelationEnd     ReferenceTripRelationType = "e"
	RelationBetween ReferenceTripRelationType = "c"
	RelationStart   ReferenceTripRelationType = "s"
	RelationAfter   ReferenceTripRelationType = "a"
)

// DistributorType is the kind of distributor that issued a DistributorMessage
type DistributorType string

const (
	DistributorCity     DistributorType = "s"
	DistributorRegion   DistributorType = "r"
	DistributorLongDist DistributorType = "f"
	DistributorOther    DistributorType = "x"
)

// PlanResponse wraps a timetable returned by a station plan lookup
type PlanResponse struct {
	Timetable *Timetable `json:"timetable,omitempty"`
}

// Timetable is the set of stops of a station for one hour slice
type Timetable struct {
	StationNumber int64           `json:"stationNumber,omitempty"`
	StationName   string          `json:"stationName,omitempty"`
	Messages      []Message       `json:"messages,omitempty"`
	Stops         []TimetableStop `json:"stops,omitempty"`
}

// TimetableStop is one train calling at the station
type TimetableStop struct {
	ID                      string                   `json:"id,omitempty"`
	EvaStationCode          *int64                   `json:"evaStationCode,omitempty"`
	ArrivalEvent            *StopEvent               `json:"arrivalEvent,omitempty"`
	DepartureEvent          *StopEvent               `json:"departureEvent,omitempty"`
	TripLabel               *TripLabel               `json:"tripLabel,omitempty"`
	Messages                []Message                `json:"messages,omitempty"`
	Connections             []ConnectionElement      `json:"connections,omitempty"`
	HistoricDelays          []HistoricDelay          `json:"historicDelays,omitempty"`
	HistoricPlatformChanges []HistoricPlatformChange `json:"historicPlatformChanges,omitempty"`
	ReferenceTripRelation   *ReferenceTripRelation   `json:"referenceTripRelation,omitempty"`
	ReferenceTripRelations  []ReferenceTripRelation  `json:"referenceTripRelations,omitempty"`
}

// StopEvent is an arrival or a departure. The planned fields come from the
// plan, the changed fields overlay delays and platform changes.
type StopEvent struct {
	PlannedTime            string      `json:"plannedTime,omitempty"`
	PlannedPlatform        string      `json:"plannedPlatform,omitempty"`
	PlannedPath            string      `json:"plannedPath,omitempty"`
	PlannedStatus          EventStatus `json:"plannedStatus,omitempty"`
	PlannedDistantEndpoint string      `json:"plannedDistantEndpoint,omitempty"`
	ChangedTime            string      `json:"changedTime,omitempty"`
	ChangedPlatform        string      `json:"changedPlatform,omitempty"`
	ChangedPath            string      `json:"changedPath,omitempty"`
	Status                 EventStatus `json:"status,omitempty"`
	ChangedDistantEndpoint string      `json:"changedDistantEndpoint,omitempty"`
	CancellationTime       string      `json:"cancellationTime,omitempty"`
	DistantChange          *int        `json:"distantChange,omitempty"`
	Hidden                 *int        `json:"hidden,omitempty"`
	Line                   string      `json:"line,omitempty"`
	Messages               []Message   `json:"messages,omitempty"`
	Transition             string      `json:"transition,omitempty"`
	Wings                  string      `json:"wings,omitempty"`
}

// TripLabel holds the data items that characterize a trip
type TripLabel struct {
	Category string   `json:"category,omitempty"`
	Flags    string   `json:"flags,omitempty"`
	Number   string   `json:"number,omitempty"`
	Owner    string   `json:"owner,omitempty"`
	Type     TripType `json:"type,omitempty"`
}

// Message is attached to a timetable, a stop or an event
type Message struct {
	ID                  string               `json:"id,omitempty"`
	Code                *int                 `json:"code,omitempty"`
	Category            string               `json:"category,omitempty"`
	Deleted             *int                 `json:"deleted,omitempty"`
	DistributorMessages []DistributorMessage `json:"distributorMessages,omitempty"`
	ExternalCategory    string               `json:"externalCategory,omitempty"`
	ExternalLink        string               `json:"externalLink,omitempty"`
	ExternalText        string               `json:"externalText,omitempty"`
	InternalText        string               `json:"internalText,omitempty"`
	Owner               string               `json:"owner,omitempty"`
	Priority            string               `json:"priority,omitempty"`
	Status              string               `json:"status,omitempty"`
	TripLabels          []TripLabel          `json:"tripLabel,omitempty"`
	ValidFrom           string               `json:"validFrom,omitempty"`
	ValidTo             string               `json:"validTo,omitempty"`
	Timestamp           string               `json:"timestamp,omitempty"`
}

// DistributorMessage is an additional text for a station disruption
type DistributorMessage struct {
	InternalText string          `json:"internalText,omitempty"`
	Name         string          `json:"name,omitempty"`
	Type         DistributorType `json:"type,omitempty"`
	Timestamp    string          `json:"timestamp,omitempty"`
}

// ConnectionElement describes a connecting train.
// Stop and ReferenceStop are value copies, not links into the parent timetable.
type ConnectionElement struct {
	ID               string           `json:"id,omitempty"`
	Status           ConnectionStatus `json:"status,omitempty"`
	EvaStationNumber *int64           `json:"evaStationNumber,omitempty"`
	Timestamp        string           `json:"timestamp,omitempty"`
	Stop             *TimetableStop   `json:"stop,omitempty"`
	ReferenceStop    *TimetableStop   `json:"referenceStop,omitempty"`
}

// HistoricDelay is one entry of the delay message history of a stop
type HistoricDelay struct {
	ArrivalEvent          string      `json:"arrivalEvent,omitempty"`
	DepartureEvent        string      `json:"departureEvent,omitempty"`
	DelayCauseDescription string      `json:"delayCauseDescription,omitempty"`
	DelaySource           DelaySource `json:"delaySource,omitempty"`
	Timestamp             string      `json:"timestamp,omitempty"`
}

// HistoricPlatformChange is one entry of the platform change history of a stop
type HistoricPlatformChange struct {
	ArrivalPlatform   string `json:"arrivalPlatform,omitempty"`
	DeparturePlatform string `json:"departurePlatform,omitempty"`
	TrackChangeCause  string `json:"trackChangeCause,omitempty"`
	Timestamp         string `json:"timestamp,omitempty"`
}

// ReferenceTripRelation relates a reference trip to a stop
type ReferenceTripRelation struct {
	ReferenceTrip *ReferenceTrip            `json:"referenceTrip,omitempty"`
	Relation      ReferenceTripRelationType `json:"relation,omitempty"`
}

// ReferenceTrip refers only to its regular trip
type ReferenceTrip struct {
	ID                string     `json:"id,omitempty"`
	CancellationFlag  *bool      `json:"cancellationFlag,omitempty"`
	TripLabel         *TripLabel `json:"tripLabel,omitempty"`
	StopData          *TripStop  `json:"stopData,omitempty"`
	CorrespondentStop *TripStop  `json:"correspondentStop,omitempty"`
}

// TripStop is a stop of a regular or reference trip
type TripStop struct {
	EvaNumber   *int64 `json:"evaNumber,omitempty"`
	Index       *int   `json:"index,omitempty"`
	Name        string `json:"name,omitempty"`
	PlannedTime string `json:"plannedTime,omitempty"`
}
