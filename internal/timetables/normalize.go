package timetables

import (
	"github.com/jusunglee/bahn-go/pkg/models"
)

// Normalize maps a decoded plan document onto the canonical plan response.
// Absent wire fields stay absent, enumeration codes are passed through and
// wire fields without a canonical counterpart are dropped.
func Normalize(w *WireTimetable) models.PlanResponse {
	if w == nil {
		return models.PlanResponse{}
	}
	return models.PlanResponse{Timetable: NormalizeTimetable(w)}
}

// NormalizeTimetable maps a decoded timetable onto models.Timetable
func NormalizeTimetable(w *WireTimetable) *models.Timetable {
	if w == nil {
		return nil
	}
	return &models.Timetable{
		StationNumber: w.EVA,
		StationName:   w.Station,
		Messages:      messages(w.M),
		Stops:         mapSlice(w.S, stop),
	}
}

// NormalizeStations maps a decoded station search document
func NormalizeStations(w *WireStations) models.StationsResponse {
	response := models.StationsResponse{Stations: []models.StationData{}}
	if w == nil {
		return response
	}
	for _, s := range w.Stations {
		response.Stations = append(response.Stations, models.StationData{
			DS100:     s.DS100,
			EVA:       s.EVA,
			Meta:      s.Meta,
			Name:      s.Name,
			Platforms: s.P,
		})
	}
	return response
}

func stop(s WireTimetableStop) models.TimetableStop {
	return models.TimetableStop{
		ID:                      s.ID,
		EvaStationCode:          clone(s.EVA),
		ArrivalEvent:            stopEvent(s.Ar),
		DepartureEvent:          stopEvent(s.Dp),
		TripLabel:               tripLabel(s.TL),
		Messages:                messages(s.M),
		Connections:             mapSlice(s.Conn, connection),
		HistoricDelays:          mapSlice(s.HD, historicDelay),
		HistoricPlatformChanges: mapSlice(s.HPC, historicPlatformChange),
		ReferenceTripRelation:   referenceTripRelationPtr(s.Ref),
		ReferenceTripRelations:  mapSlice(s.RTR, referenceTripRelation),
	}
}

// stopEvent is shared by arrivals and departures
func stopEvent(e *WireStopEvent) *models.StopEvent {
	if e == nil {
		return nil
	}
	return &models.StopEvent{
		PlannedTime:            e.PT,
		PlannedPlatform:        e.PP,
		PlannedPath:            e.PPth,
		PlannedStatus:          models.EventStatus(e.PS),
		PlannedDistantEndpoint: e.PDE,
		ChangedTime:            e.CT,
		ChangedPlatform:        e.CP,
		ChangedPath:            e.CPth,
		Status:                 models.EventStatus(e.CS),
		ChangedDistantEndpoint: e.CDE,
		CancellationTime:       e.CLT,
		DistantChange:          clone(e.DC),
		Hidden:                 clone(e.HI),
		Line:                   e.L,
		Messages:               messages(e.M),
		Transition:             e.Tra,
		Wings:                  e.Wings,
	}
}

func tripLabel(tl *WireTripLabel) *models.TripLabel {
	if tl == nil {
		return nil
	}
	label := tripLabelValue(*tl)
	return &label
}

func tripLabelValue(tl WireTripLabel) models.TripLabel {
	return models.TripLabel{
		Category: tl.C,
		Flags:    tl.F,
		Number:   tl.N,
		Owner:    tl.O,
		Type:     models.TripType(tl.T),
	}
}

func messages(ms []WireMessage) []models.Message {
	return mapSlice(ms, message)
}

func message(m WireMessage) models.Message {
	return models.Message{
		ID:                  m.ID,
		Code:                clone(m.C),
		Category:            m.Cat,
		Deleted:             clone(m.Del),
		DistributorMessages: mapSlice(m.DM, distributorMessage),
		ExternalCategory:    m.EC,
		ExternalLink:        m.Elnk,
		ExternalText:        m.Ext,
		InternalText:        m.Int,
		Owner:               m.O,
		Priority:            m.Pr,
		Status:              m.T,
		TripLabels:          mapSlice(m.TL, tripLabelValue),
		ValidFrom:           m.From,
		ValidTo:             m.To,
		Timestamp:           m.TS,
	}
}

func distributorMessage(dm WireDistributorMessage) models.DistributorMessage {
	return models.DistributorMessage{
		InternalText: dm.Int,
		Name:         dm.N,
		Type:         models.DistributorType(dm.T),
		Timestamp:    dm.TS,
	}
}

func connection(c WireConnection) models.ConnectionElement {
	return models.ConnectionElement{
		ID:               c.ID,
		Status:           models.ConnectionStatus(c.CS),
		EvaStationNumber: clone(c.EVA),
		Timestamp:        c.TS,
		Stop:             stopPtr(c.S),
		ReferenceStop:    stopPtr(c.Ref),
	}
}

func stopPtr(s *WireTimetableStop) *models.TimetableStop {
	if s == nil {
		return nil
	}
	normalized := stop(*s)
	return &normalized
}

func historicDelay(hd WireHistoricDelay) models.HistoricDelay {
	return models.HistoricDelay{
		ArrivalEvent:          hd.Ar,
		DepartureEvent:        hd.Dp,
		DelayCauseDescription: hd.Cod,
		DelaySource:           models.DelaySource(hd.Src),
		Timestamp:             hd.TS,
	}
}

func historicPlatformChange(hpc WireHistoricPlatformChange) models.HistoricPlatformChange {
	return models.HistoricPlatformChange{
		ArrivalPlatform:   hpc.Ar,
		DeparturePlatform: hpc.Dp,
		TrackChangeCause:  hpc.Cot,
		Timestamp:         hpc.TS,
	}
}

func referenceTripRelationPtr(r *WireReferenceTripRelation) *models.ReferenceTripRelation {
	if r == nil {
		return nil
	}
	relation := referenceTripRelation(*r)
	return &relation
}

func referenceTripRelation(r WireReferenceTripRelation) models.ReferenceTripRelation {
	return models.ReferenceTripRelation{
		ReferenceTrip: referenceTrip(r.RT),
		Relation:      models.ReferenceTripRelationType(r.RTS),
	}
}

func referenceTrip(rt *WireReferenceTrip) *models.ReferenceTrip {
	if rt == nil {
		return nil
	}
	return &models.ReferenceTrip{
		ID:                rt.ID,
		CancellationFlag:  clone(rt.C),
		TripLabel:         tripLabel(rt.RTL),
		StopData:          tripStop(rt.SD),
		CorrespondentStop: tripStop(rt.EA),
	}
}

func tripStop(ts *WireTripStop) *models.TripStop {
	if ts == nil {
		return nil
	}
	return &models.TripStop{
		EvaNumber:   clone(ts.EVA),
		Index:       clone(ts.I),
		Name:        ts.N,
		PlannedTime: ts.PT,
	}
}

// clone copies optional scalars so the result shares nothing with the wire tree
func clone[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// mapSlice keeps absent lists absent rather than turning them into empty ones
func mapSlice[W any, M any](in []W, fn func(W) M) []M {
	if len(in) == 0 {
		return nil
	}
	out := make([]M, len(in))
	for i, w := range in {
		out[i] = fn(w)
	}
	return out
}
