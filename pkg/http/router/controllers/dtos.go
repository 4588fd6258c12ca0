package controllers

import (
	"github.com/lintang-b-s/navigatorx-guidance/pkg/guidance"
	"github.com/lintang-b-s/navigatorx-guidance/pkg/http/usecases"
	"github.com/lintang-b-s/navigatorx-guidance/pkg/util"
)

type edgeTurnsRequest struct {
	EdgeID int64 `json:"edge_id" validate:"min=0"`
}

type junctionRequest struct {
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lon float64 `json:"lon" validate:"min=-180,max=180"`
}

type directionsRequest struct {
	EdgeIDs []int64 `json:"edge_ids" validate:"required,min=1,dive,min=0"`
}

// maneuverResponse. cuma diisi untuk instruksi yang diumumkan.
type maneuverResponse struct {
	Type     string `json:"type"`
	Modifier string `json:"modifier,omitempty"`
	Text     string `json:"text"`
}

type turnResponse struct {
	ToEdge     uint32            `json:"to_edge"`
	StreetName string            `json:"street_name"`
	Angle      float64           `json:"angle"`
	Valid      bool              `json:"valid"`
	TurnType   string            `json:"turn_type"`
	Modifier   string            `json:"modifier"`
	Confidence float64           `json:"confidence"`
	Penalty    float64           `json:"penalty"` // detik
	Polyline   string            `json:"polyline"`
	Maneuver   *maneuverResponse `json:"maneuver,omitempty"`
}

type approachResponse struct {
	ViaEdge    uint32         `json:"via_edge"`
	FromNode   uint32         `json:"from_node"`
	StreetName string         `json:"street_name"`
	Cached     bool           `json:"cached"`
	Turns      []turnResponse `json:"turns"`
}

func NewApproachResponse(a usecases.Approach) approachResponse {
	resp := approachResponse{
		ViaEdge:    uint32(a.ViaEdge),
		FromNode:   uint32(a.FromNode),
		StreetName: a.StreetName,
		Cached:     a.FromStore,
		Turns:      make([]turnResponse, 0, len(a.Turns)),
	}
	for _, t := range a.Turns {
		tr := turnResponse{
			ToEdge:     uint32(t.Record.ToEdge),
			StreetName: t.StreetName,
			Angle:      util.RoundFloat(t.Record.Angle, 2),
			Valid:      t.Record.Valid,
			TurnType:   t.Instruction.Type.String(),
			Modifier:   t.Instruction.Modifier.String(),
			Confidence: util.RoundFloat(t.Record.Confidence, 3),
			Penalty:    util.RoundFloat(t.Record.Penalty, 2),
			Polyline:   t.Polyline,
		}
		if t.Announced {
			m := guidance.Render(t.Instruction)
			tr.Maneuver = &maneuverResponse{
				Type:     m.Type,
				Modifier: m.Modifier,
				Text:     guidance.Describe(t.Instruction, t.StreetName),
			}
		}
		resp.Turns = append(resp.Turns, tr)
	}
	return resp
}

type junctionResponse struct {
	Vertex     uint32             `json:"vertex"`
	Lat        float64            `json:"lat"`
	Lon        float64            `json:"lon"`
	Degree     int                `json:"degree"`
	Distance   float64            `json:"distance"`
	Approaches []approachResponse `json:"approaches"`
}

func NewJunctionResponse(j usecases.JunctionTurns) junctionResponse {
	resp := junctionResponse{
		Vertex:     uint32(j.Junction.Vertex),
		Lat:        j.Junction.Lat,
		Lon:        j.Junction.Lon,
		Degree:     j.Junction.Degree,
		Distance:   j.Junction.Distance,
		Approaches: make([]approachResponse, 0, len(j.Approaches)),
	}
	for _, a := range j.Approaches {
		resp.Approaches = append(resp.Approaches, NewApproachResponse(a))
	}
	return resp
}

type directionsResponse struct {
	Steps []guidance.RouteStep `json:"steps"`
}

func NewDirectionsResponse(steps []guidance.RouteStep) directionsResponse {
	return directionsResponse{Steps: steps}
}

type errorResponse struct {
	Error struct {
		Code       string   `json:"code"`
		Message    string   `json:"message"`
		Validation []string `json:"validation,omitempty"`
	} `json:"error"`
}
