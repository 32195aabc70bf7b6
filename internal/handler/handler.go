package handler

import (
	"github.com/krishna-deora/Synthetic-Radio-Host/internal/dto"
	"github.com/krishna-deora/Synthetic-Radio-Host/internal/render"
	"github.com/krishna-deora/Synthetic-Radio-Host/internal/service"
	"github.com/krishna-deora/Synthetic-Radio-Host/internal/session"
	"github.com/krishna-deora/Synthetic-Radio-Host/internal/types"
)

// Handler serves the local console API. It only reads snapshots and forwards
// the submit and reset intents to the session.
type Handler struct {
	Session *session.Controller
	Service *service.Service
}

func NewHandler(ctrl *session.Controller, svc *service.Service) Handler {
	return Handler{Session: ctrl, Service: svc}
}

func sessionData(s types.Snapshot) dto.SessionResData {
	return dto.SessionResData{Snapshot: s, View: render.Gate(s)}
}
