package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bnema/gigpulse/internal/domain"
	"github.com/bnema/gigpulse/internal/version"
)

type handler struct {
	deps Deps
}

type textRequest struct {
	Text string `json:"text"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func decodeText(r *http.Request) (string, error) {
	var body textRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return "", err
	}
	return body.Text, nil
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": version.Version,
	})
}

func (h *handler) snapshot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.Engine.Snapshot())
}

func (h *handler) buyAsset(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "id")
	if err := h.deps.Engine.BuyAsset(r.Context(), assetID); err != nil {
		if errors.Is(err, domain.ErrEmptyAssetID) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.deps.Logger.Error().Err(err).Str("asset_id", assetID).Msg("buy asset failed")
		writeError(w, http.StatusBadGateway, "purchase failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ownedAssets": h.deps.Engine.Snapshot().OwnedAssets,
	})
}

func (h *handler) listMessages(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"messages": h.deps.Broker.Messages(),
	})
}

func (h *handler) postMessage(w http.ResponseWriter, r *http.Request) {
	text, err := decodeText(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := h.deps.Broker.SendMessage(r.Context(), text); err != nil {
		if errors.Is(err, domain.ErrEmptyMessage) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "send message failed")
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "queued"})
}

func (h *handler) support(w http.ResponseWriter, r *http.Request) {
	text, err := decodeText(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	writeJSON(w, http.StatusOK, h.deps.Support.Route(text))
}

func (h *handler) listBounties(w http.ResponseWriter, r *http.Request) {
	bounties, err := h.deps.Bounties.ListOpenBounties(r.Context())
	if err != nil {
		h.deps.Logger.Error().Err(err).Msg("list bounties failed")
		writeError(w, http.StatusInternalServerError, "list bounties failed")
		return
	}
	if bounties == nil {
		bounties = []domain.Bounty{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"bounties": bounties})
}
