package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPlayerRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("POST /v1/players", handler.CreatePlayer)
	mux.HandleFunc("GET /v1/players/{playerID}", handler.GetPlayer)
	mux.HandleFunc("PATCH /v1/players/{playerID}", handler.UpdatePlayer)
	mux.HandleFunc("DELETE /v1/players/{playerID}", handler.DeletePlayer)
}

func registerTeamRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("POST /v1/teams", handler.CreateTeam)
	mux.HandleFunc("GET /v1/teams/{teamID}", handler.GetTeam)
	mux.HandleFunc("PATCH /v1/teams/{teamID}", handler.UpdateTeam)
	mux.HandleFunc("DELETE /v1/teams/{teamID}", handler.DeleteTeam)
	mux.HandleFunc("GET /v1/teams/{teamID}/lineup", handler.GetLineup)
	mux.HandleFunc("PUT /v1/teams/{teamID}/lineup", handler.SaveLineup)
}

func registerDrawRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/draws", handler.CreateDraw)
}

func registerMatchRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/matches", handler.ListMatches)
	mux.HandleFunc("POST /v1/matches", handler.CreateMatch)
	mux.HandleFunc("POST /v1/matches/generate", handler.GenerateMatches)
	mux.HandleFunc("GET /v1/matches/{matchID}", handler.GetMatch)
	mux.HandleFunc("PATCH /v1/matches/{matchID}", handler.UpdateMatch)
	mux.HandleFunc("POST /v1/matches/{matchID}/events", handler.AddMatchEvent)
	mux.HandleFunc("DELETE /v1/matches/{matchID}/events/{eventID}", handler.DeleteMatchEvent)
	mux.HandleFunc("GET /v1/matches/{matchID}/clock", handler.GetMatchClock)
	mux.HandleFunc("POST /v1/matches/{matchID}/clock/{action}", handler.ApplyMatchClock)
}

func registerLiveRoutes(mux *http.ServeMux, hub *LiveHub) {
	if hub == nil {
		return
	}
	mux.HandleFunc("GET /v1/matches/{matchID}/live", hub.Serve)
}
