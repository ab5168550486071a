package web

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/tonytani37/votes-for-players/controller"
	"github.com/tonytani37/votes-for-players/db"
	"github.com/tonytani37/votes-for-players/model"
	"github.com/unrolled/render"
)

type apiError struct {
	Error string `json:"error"`
}

func apiMatchesHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, http.StatusOK, ctrl.Matches())
	}
}

func apiPlayersHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := ctrl.SearchPlayers(r.Context(), sessionID(r), stateFromRequest(r, "date"))
		if err != nil {
			renderAPIError(w, render, err)
			return
		}
		render.JSON(w, http.StatusOK, res)
	}
}

func apiRankingHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := ctrl.GetRanking(r.Context(), sessionID(r), stateFromRequest(r, "match_date"))
		if err != nil {
			renderAPIError(w, render, err)
			return
		}
		render.JSON(w, http.StatusOK, v)
	}
}

func apiRecordVoteHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var v model.Vote
		if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
			render.JSON(w, http.StatusBadRequest, apiError{Error: "Invalid data"})
			return
		}

		if err := ctrl.RecordVote(r.Context(), &v); err != nil {
			switch {
			case errors.Is(err, db.ErrInvalidVote):
				render.JSON(w, http.StatusBadRequest, apiError{Error: err.Error()})
			case errors.Is(err, db.ErrDuplicateVote):
				render.JSON(w, http.StatusConflict, apiError{Error: err.Error()})
			default:
				renderAPIError(w, render, err)
			}
			return
		}

		render.JSON(w, http.StatusCreated, map[string]string{
			"message":     "Item added successfully!",
			"inserted_id": v.ID,
		})
	}
}

func apiLedgerRankingHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := ctrl.LedgerRanking(r.Context(), stateFromRequest(r, "match_date"))
		if err != nil {
			renderAPIError(w, render, err)
			return
		}
		render.JSON(w, http.StatusOK, v)
	}
}

func apiLedgerMatchesHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matches, err := ctrl.LedgerMatches(r.Context())
		if err != nil {
			renderAPIError(w, render, err)
			return
		}
		render.JSON(w, http.StatusOK, matches)
	}
}

func renderAPIError(w http.ResponseWriter, render *render.Render, err error) {
	status, msg := errorStatus(err)
	if status >= http.StatusInternalServerError {
		log.Printf("error handling api request: %v", err)
	}
	render.JSON(w, status, apiError{Error: msg})
}
