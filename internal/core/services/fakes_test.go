package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/evoting/internal/core/domain"
)

type memStore struct {
	mu         sync.Mutex
	elections  map[uuid.UUID]*domain.Election
	candidates map[uuid.UUID]*domain.Candidate
	parties    map[uuid.UUID]*domain.Party
	voters     map[uuid.UUID]*domain.Voter
	votes      []domain.Vote
	results    map[uuid.UUID]int
	writes     int
	failWith   error
}

func newMemStore() *memStore {
	return &memStore{
		elections:  make(map[uuid.UUID]*domain.Election),
		candidates: make(map[uuid.UUID]*domain.Candidate),
		parties:    make(map[uuid.UUID]*domain.Party),
		voters:     make(map[uuid.UUID]*domain.Voter),
		results:    make(map[uuid.UUID]int),
	}
}

type fakeElectionRepo struct{ *memStore }

func (r fakeElectionRepo) Save(ctx context.Context, e *domain.Election) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *e
	r.elections[e.ID] = &cp
	return nil
}

func (r fakeElectionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Election, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	e, ok := r.elections[id]
	if !ok {
		return nil, domain.ErrElectionNotFound
	}
	cp := *e
	cp.Candidates = nil
	var owned []*domain.Candidate
	for _, c := range r.candidates {
		if c.ElectionID == id {
			owned = append(owned, c)
		}
	}
	sort.Slice(owned, func(i, j int) bool { return owned[i].CreatedAt.Before(owned[j].CreatedAt) })
	for _, c := range owned {
		cp.Candidates = append(cp.Candidates, c.ID)
	}
	return &cp, nil
}

func (r fakeElectionRepo) GetAll(ctx context.Context) ([]*domain.Election, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Election
	for _, e := range r.elections {
		cp := *e
		out = append(out, &cp)
	}
	return out, nil
}

func (r fakeElectionRepo) ListActive(ctx context.Context, now time.Time) ([]*domain.Election, error) {
	all, _ := r.GetAll(ctx)
	var out []*domain.Election
	for _, e := range all {
		if e.IsOpen(now) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r fakeElectionRepo) Update(ctx context.Context, e *domain.Election) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	cp := *e
	r.elections[e.ID] = &cp
	return nil
}

func (r fakeElectionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.elections[id]; !ok {
		return domain.ErrElectionNotFound
	}
	delete(r.elections, id)
	return nil
}

type fakeCandidateRepo struct{ *memStore }

func (r fakeCandidateRepo) Save(ctx context.Context, c *domain.Candidate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	r.candidates[c.ID] = &cp
	return nil
}

func (r fakeCandidateRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.candidates[id]
	if !ok {
		return nil, domain.ErrCandidateNotFound
	}
	cp := *c
	return &cp, nil
}

func (r fakeCandidateRepo) ListParticipants(ctx context.Context, electionID uuid.UUID) ([]domain.Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var owned []*domain.Candidate
	for _, c := range r.candidates {
		if c.ElectionID == electionID {
			owned = append(owned, c)
		}
	}
	sort.Slice(owned, func(i, j int) bool { return owned[i].CreatedAt.After(owned[j].CreatedAt) })
	var out []domain.Participant
	for _, c := range owned {
		p := r.parties[c.PartyID]
		out = append(out, domain.Participant{
			PartyName:     p.Name,
			PartyLogoURL:  p.LogoURL,
			CandidateName: c.Name,
			CandidateID:   c.ID,
		})
	}
	return out, nil
}

type fakePartyRepo struct{ *memStore }

func (r fakePartyRepo) Save(ctx context.Context, p *domain.Party) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.parties {
		if existing.Name == p.Name {
			return domain.ErrPartyExists
		}
	}
	cp := *p
	r.parties[p.ID] = &cp
	return nil
}

func (r fakePartyRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Party, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.parties[id]
	if !ok {
		return nil, domain.ErrPartyNotFound
	}
	cp := *p
	return &cp, nil
}

func (r fakePartyRepo) GetAll(ctx context.Context) ([]*domain.Party, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Party
	for _, p := range r.parties {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

type fakeVoterRepo struct{ *memStore }

func (r fakeVoterRepo) Save(ctx context.Context, v *domain.Voter) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *v
	r.voters[v.ID] = &cp
	return nil
}

func (r fakeVoterRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Voter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.voters[id]
	if !ok {
		return nil, domain.ErrVoterNotFound
	}
	cp := *v
	return &cp, nil
}

func (r fakeVoterRepo) SetAccreditation(ctx context.Context, id uuid.UUID, accredited bool) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.voters[id]
	if !ok {
		return false, domain.ErrVoterNotFound
	}
	if v.Accredited == accredited {
		return false, nil
	}
	v.Accredited = accredited
	r.writes++
	return true, nil
}

// fakeVoteRepo enforces the (voter, election) key under the store lock, the
// way the primary key does in the real adapters.
type fakeVoteRepo struct {
	*memStore
	hasVotedAlwaysFalse bool
}

func (r fakeVoteRepo) SaveVote(ctx context.Context, v *domain.Vote) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.votes {
		if existing.VoterID == v.VoterID && existing.ElectionID == v.ElectionID {
			return domain.ErrAlreadyVoted
		}
	}
	r.votes = append(r.votes, *v)
	return nil
}

func (r fakeVoteRepo) HasVoted(ctx context.Context, voterID, electionID uuid.UUID) (bool, error) {
	if r.hasVotedAlwaysFalse {
		return false, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.votes {
		if existing.VoterID == voterID && existing.ElectionID == electionID {
			return true, nil
		}
	}
	return false, nil
}

func (r fakeVoteRepo) ListByElection(ctx context.Context, electionID uuid.UUID) ([]domain.Vote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Vote
	for _, v := range r.votes {
		if v.ElectionID == electionID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r fakeVoteRepo) CountByCandidate(ctx context.Context, candidateID uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, v := range r.votes {
		if v.CandidateID == candidateID {
			n++
		}
	}
	return n, nil
}

type fakeResultRepo struct{ *memStore }

func (r fakeResultRepo) SummarizeVotes(ctx context.Context, electionID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	r.results[electionID]++
	return nil
}

func (r fakeResultRepo) GetCandidateStats(ctx context.Context, electionID uuid.UUID) ([]domain.CandidateStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[uuid.UUID]int64)
	var total int64
	for _, v := range r.votes {
		if v.ElectionID == electionID {
			counts[v.CandidateID]++
			total++
		}
	}
	var out []domain.CandidateStats
	for id, n := range counts {
		out = append(out, domain.CandidateStats{CandidateID: id, VoteCount: n, Percentage: float64(n) / float64(total) * 100})
	}
	return out, nil
}

// seed helpers

func (m *memStore) addElection(state, lga string, end time.Time) *domain.Election {
	e := &domain.Election{
		ID:        uuid.New(),
		Title:     "Election",
		State:     state,
		LGA:       lga,
		StartTime: end.Add(-48 * time.Hour),
		EndTime:   end,
		CreatedAt: time.Now(),
	}
	m.elections[e.ID] = e
	return e
}

func (m *memStore) addParty(name string) *domain.Party {
	p := &domain.Party{ID: uuid.New(), Name: name, LogoURL: "https://img.example.com/" + name + ".png"}
	m.parties[p.ID] = p
	return p
}

func (m *memStore) addCandidate(electionID, partyID uuid.UUID, name string, createdAt time.Time) *domain.Candidate {
	c := &domain.Candidate{ID: uuid.New(), ElectionID: electionID, PartyID: partyID, Name: name, CreatedAt: createdAt}
	m.candidates[c.ID] = c
	return c
}

func (m *memStore) addVoter(state, lga string, accredited bool) *domain.Voter {
	v := &domain.Voter{ID: uuid.New(), Name: "Voter", State: state, LGA: lga, Accredited: accredited}
	m.voters[v.ID] = v
	return v
}
