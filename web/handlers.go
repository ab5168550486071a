package web

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tonytani37/votes-for-players/config"
	"github.com/tonytani37/votes-for-players/controller"
	"github.com/tonytani37/votes-for-players/model"
	"github.com/tonytani37/votes-for-players/playerapi"
	"github.com/unrolled/render"
)

const (
	fetchFailedMessage  = "データの取得に失敗しました。時間をおいて再度お試しください。"
	configFailedMessage = "設定ファイルの読み込みに失敗しました。"
	voteFailedMessage   = "投票に失敗しました。時間をおいて再度お試しください。"
)

func rootHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/players", http.StatusFound)
	}
}

func healthHandler(render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.Text(w, http.StatusOK, "ok")
	}
}

// stateFromRequest reads the selected match, team and search criteria from
// the query string. matchParam names the date parameter.
func stateFromRequest(r *http.Request, matchParam string) controller.State {
	q := r.URL.Query()
	return controller.State{
		Date: q.Get(matchParam),
		Team: model.ParseTeamSelector(q.Get("team")),
		Criteria: model.FilterCriteria{
			Query:    q.Get("q"),
			Division: q.Get("division"),
			Number:   q.Get("number"),
		},
	}
}

func playerSearchHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := stateFromRequest(r, "date")
		results, err := ctrl.SearchPlayers(r.Context(), sessionID(r), s)
		if err != nil {
			renderError(w, render, err)
			return
		}

		data := map[string]any{
			"matches": ctrl.Matches(),
			"results": results,
		}
		render.HTML(w, http.StatusOK, "players", data)
	}
}

func getPlayerHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := chi.URLParam(r, "playerID")
		d, err := ctrl.GetPlayer(r.Context(), sessionID(r), r.URL.Query().Get("date"), playerID)
		if err != nil {
			renderError(w, render, err)
			return
		}

		render.HTML(w, http.StatusOK, "player", d)
	}
}

func voteHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			render.HTML(w, http.StatusBadRequest, "400", err.Error())
			return
		}

		playerID := chi.URLParam(r, "playerID")
		v, err := ctrl.Vote(r.Context(), sessionID(r), r.PostForm.Get("date"), playerID)
		if err != nil {
			if errors.Is(err, playerapi.ErrDataFetch) {
				log.Printf("error sending vote for %s: %v", playerID, err)
				render.HTML(w, http.StatusBadGateway, "502", voteFailedMessage)
				return
			}
			renderError(w, render, err)
			return
		}

		render.HTML(w, http.StatusOK, "thanks", v)
	}
}

func rankingHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := stateFromRequest(r, "date")
		v, err := ctrl.GetRanking(r.Context(), sessionID(r), s)
		if err != nil {
			renderError(w, render, err)
			return
		}

		data := map[string]any{
			"matches": ctrl.Matches(),
			"ranking": v,
		}
		render.HTML(w, http.StatusOK, "ranking", data)
	}
}

func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, controller.ErrMatchNotFound):
		return http.StatusNotFound, "試合が見つかりません"
	case errors.Is(err, controller.ErrPlayerNotFound):
		return http.StatusNotFound, "選手が見つかりません"
	case errors.Is(err, controller.ErrSuperseded):
		return http.StatusConflict, "新しいリクエストに置き換えられました"
	case errors.Is(err, controller.ErrLedgerDisabled):
		return http.StatusNotFound, "投票台帳は無効です"
	case errors.Is(err, config.ErrConfigLoad):
		return http.StatusBadGateway, configFailedMessage
	case errors.Is(err, playerapi.ErrDataFetch):
		return http.StatusBadGateway, fetchFailedMessage
	default:
		return http.StatusInternalServerError, err.Error()
	}
}

func renderError(w http.ResponseWriter, render *render.Render, err error) {
	status, msg := errorStatus(err)
	if status >= http.StatusInternalServerError {
		log.Printf("error handling request: %v", err)
	}
	render.HTML(w, status, statusTemplate(status), msg)
}

func statusTemplate(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "400"
	case http.StatusNotFound:
		return "404"
	case http.StatusConflict:
		return "409"
	case http.StatusBadGateway:
		return "502"
	default:
		return "500"
	}
}
