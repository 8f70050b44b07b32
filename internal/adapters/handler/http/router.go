package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/vncsmyrnk/evoting/internal/core/ports"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Handlers struct {
	Elections  *ElectionHandler
	Votes      *VoteHandler
	Candidates *CandidateHandler
	Parties    *PartyHandler
	Voters     *VoterHandler
}

func NewHandler(h Handlers, verifier ports.TokenVerifier, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	if len(allowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   allowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	requireVoter := RequireVoter(verifier)
	requireOfficial := RequireOfficial(verifier)

	r.Route("/api", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("welcome"))
		})

		r.Route("/elections", func(r chi.Router) {
			r.Get("/", h.Elections.ListElections)
			r.With(requireOfficial).Post("/", h.Elections.CreateElection)
			r.Get("/active", h.Elections.ListActive)
			r.With(requireVoter).Get("/active/mine", h.Elections.ListMine)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.Elections.GetElection)
				r.With(requireOfficial).Patch("/", h.Elections.UpdateElection)
				r.With(requireOfficial).Delete("/", h.Elections.DeleteElection)
				r.Get("/participants", h.Elections.ListParticipants)
				r.Get("/statistics", h.Elections.GetStatistics)
			})
		})

		r.Route("/votes", func(r chi.Router) {
			r.With(requireVoter).Post("/", h.Votes.CastVote)
			r.Get("/{electionId}", h.Votes.ListVotes)
		})

		r.Route("/candidates", func(r chi.Router) {
			r.With(requireOfficial).Post("/", h.Candidates.RegisterCandidate)
			r.Get("/{id}", h.Candidates.GetCandidate)
			r.Get("/{id}/votes", h.Candidates.CountVotes)
		})

		r.Route("/parties", func(r chi.Router) {
			r.With(requireOfficial).Post("/", h.Parties.CreateParty)
			r.Get("/", h.Parties.ListParties)
			r.Get("/{id}", h.Parties.GetParty)
		})

		r.Route("/voters", func(r chi.Router) {
			r.Post("/", h.Voters.RegisterVoter)
			r.With(requireVoter).Get("/me", h.Voters.GetMe)
		})

		r.Route("/officials", func(r chi.Router) {
			r.Use(requireOfficial)
			r.Post("/accredit/{voterId}", h.Voters.Accredit)
			r.Post("/de_accredit/{voterId}", h.Voters.DeAccredit)
		})
	})

	return otelhttp.NewHandler(r, "evoting-api")
}
