package timetables

import "encoding/xml"

// Wire types mirror the XML documents of the DB Timetables API. Field names
// follow the upstream attribute abbreviations and must not leave this package;
// Normalize maps them onto pkg/models.
//
// Every element the API may repeat is decoded into a slice, so a single
// occurrence and many occurrences come out in the same list shape.

// WireStations is the station search document: <stations><station .../></stations>
type WireStations struct {
	XMLName  xml.Name      `xml:"stations"`
	Stations []WireStation `xml:"station"`
}

// WireStation is one <station> of a station search
type WireStation struct {
	DS100 string `xml:"ds100,attr"`
	EVA   int64  `xml:"eva,attr"`
	Meta  string `xml:"meta,attr"`
	Name  string `xml:"name,attr"`
	P     string `xml:"p,attr"`
}

// WireTimetable is the plan document: <timetable station="..." eva="..."><s>...</s></timetable>
type WireTimetable struct {
	XMLName xml.Name            `xml:"timetable"`
	Station string              `xml:"station,attr"`
	EVA     int64               `xml:"eva,attr"`
	M       []WireMessage       `xml:"m"`
	S       []WireTimetableStop `xml:"s"`
}

// WireTimetableStop is a <s> element, one train calling at the station
type WireTimetableStop struct {
	ID   string                       `xml:"id,attr"`
	EVA  *int64                       `xml:"eva,attr"`
	TL   *WireTripLabel               `xml:"tl"`
	Ar   *WireStopEvent               `xml:"ar"`
	Dp   *WireStopEvent               `xml:"dp"`
	M    []WireMessage                `xml:"m"`
	Conn []WireConnection             `xml:"conn"`
	HD   []WireHistoricDelay          `xml:"hd"`
	HPC  []WireHistoricPlatformChange `xml:"hpc"`
	Ref  *WireReferenceTripRelation   `xml:"ref"`
	RTR  []WireReferenceTripRelation  `xml:"rtr"`
}

// WireStopEvent is an <ar> or <dp> element
type WireStopEvent struct {
	CDE   string        `xml:"cde,attr"`
	CLT   string        `xml:"clt,attr"`
	CP    string        `xml:"cp,attr"`
	CPth  string        `xml:"cpth,attr"`
	CS    string        `xml:"cs,attr"`
	CT    string        `xml:"ct,attr"`
	DC    *int          `xml:"dc,attr"`
	HI    *int          `xml:"hi,attr"`
	L     string        `xml:"l,attr"`
	PDE   string        `xml:"pde,attr"`
	PP    string        `xml:"pp,attr"`
	PPth  string        `xml:"ppth,attr"`
	PS    string        `xml:"ps,attr"`
	PT    string        `xml:"pt,attr"`
	Tra   string        `xml:"tra,attr"`
	Wings string        `xml:"wings,attr"`
	M     []WireMessage `xml:"m"`
}

// WireTripLabel is a <tl> or <rtl> element
type WireTripLabel struct {
	C string `xml:"c,attr"`
	F string `xml:"f,attr"`
	N string `xml:"n,attr"`
	O string `xml:"o,attr"`
	T string `xml:"t,attr"`
}

// WireMessage is a <m> element attached to a timetable, stop or event
type WireMessage struct {
	ID   string                   `xml:"id,attr"`
	C    *int                     `xml:"c,attr"`
	Cat  string                   `xml:"cat,attr"`
	Del  *int                     `xml:"del,attr"`
	EC   string                   `xml:"ec,attr"`
	Elnk string                   `xml:"elnk,attr"`
	Ext  string                   `xml:"ext,attr"`
	From string                   `xml:"from,attr"`
	Int  string                   `xml:"int,attr"`
	O    string                   `xml:"o,attr"`
	Pr   string                   `xml:"pr,attr"`
	T    string                   `xml:"t,attr"`
	To   string                   `xml:"to,attr"`
	TS   string                   `xml:"ts,attr"`
	DM   []WireDistributorMessage `xml:"dm"`
	TL   []WireTripLabel          `xml:"tl"`
}

// WireDistributorMessage is a <dm> element of a message
type WireDistributorMessage struct {
	Int string `xml:"int,attr"`
	N   string `xml:"n,attr"`
	T   string `xml:"t,attr"`
	TS  string `xml:"ts,attr"`
}

// WireConnection is a <conn> element
type WireConnection struct {
	CS  string             `xml:"cs,attr"`
	EVA *int64             `xml:"eva,attr"`
	ID  string             `xml:"id,attr"`
	TS  string             `xml:"ts,attr"`
	Ref *WireTimetableStop `xml:"ref"`
	S   *WireTimetableStop `xml:"s"`
}

// WireHistoricDelay is a <hd> element
type WireHistoricDelay struct {
	Ar  string `xml:"ar,attr"`
	Cod string `xml:"cod,attr"`
	Dp  string `xml:"dp,attr"`
	Src string `xml:"src,attr"`
	TS  string `xml:"ts,attr"`
}

// WireHistoricPlatformChange is a <hpc> element
type WireHistoricPlatformChange struct {
	Ar  string `xml:"ar,attr"`
	Cot string `xml:"cot,attr"`
	Dp  string `xml:"dp,attr"`
	TS  string `xml:"ts,attr"`
}

// WireReferenceTripRelation is a <ref> or <rtr> element
type WireReferenceTripRelation struct {
	RT  *WireReferenceTrip `xml:"rt"`
	RTS string             `xml:"rts,attr"`
}

// WireReferenceTrip is the <rt> element of a reference trip relation
type WireReferenceTrip struct {
	C   *bool          `xml:"c,attr"`
	EA  *WireTripStop  `xml:"ea"`
	ID  string         `xml:"id,attr"`
	RTL *WireTripLabel `xml:"rtl"`
	SD  *WireTripStop  `xml:"sd"`
}

// WireTripStop is a <sd> or <ea> element of a reference trip
type WireTripStop struct {
	EVA *int64 `xml:"eva,attr"`
	I   *int   `xml:"i,attr"`
	N   string `xml:"n,attr"`
	PT  string `xml:"pt,attr"`
}
