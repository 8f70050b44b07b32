package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/vncsmyrnk/evoting/internal/adapters/auth"
	handler "github.com/vncsmyrnk/evoting/internal/adapters/handler/http"
	repo "github.com/vncsmyrnk/evoting/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/evoting/internal/core/domain"
	"github.com/vncsmyrnk/evoting/internal/core/ports"
	"github.com/vncsmyrnk/evoting/internal/core/services"
)

const jwtSecret = "test-secret"

type TestApp struct {
	DB          *sql.DB
	Server      *httptest.Server
	Client      *http.Client
	SummarySvc  ports.SummaryService
	DBContainer testcontainers.Container

	// OfficialToken carries the official role for admin-only routes.
	OfficialToken string
}

func setupPostgresContainer(ctx context.Context) (testcontainers.Container, string, error) {
	pgContainer, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", err
	}

	return pgContainer, connStr, nil
}

func applyMigrations(db *sql.DB) error {
	dirPath := "../../internal/adapters/repository/postgres/migrations"

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".up.sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	for _, name := range files {
		content, err := os.ReadFile(filepath.Join(dirPath, name))
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", name, err)
		}
		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", name, err)
		}
	}

	return nil
}

func setupTestApp(t *testing.T) *TestApp {
	t.Helper()
	ctx := context.Background()

	dbContainer, dbURL, err := setupPostgresContainer(ctx)
	require.NoError(t, err)

	db, err := sql.Open("postgres", dbURL)
	require.NoError(t, err)
	require.NoError(t, applyMigrations(db))

	electionRepo := repo.NewElectionRepository(db)
	candidateRepo := repo.NewCandidateRepository(db)
	partyRepo := repo.NewPartyRepository(db)
	voterRepo := repo.NewVoterRepository(db)
	voteRepo := repo.NewVoteRepository(db)
	resultRepo := repo.NewElectionResultRepository(db)

	summarySvc := services.NewSummaryService(electionRepo, resultRepo)
	router := handler.NewHandler(handler.Handlers{
		Elections:  handler.NewElectionHandler(services.NewElectionService(electionRepo, candidateRepo, voterRepo), summarySvc),
		Votes:      handler.NewVoteHandler(services.NewVoteService(electionRepo, voterRepo, voteRepo)),
		Candidates: handler.NewCandidateHandler(services.NewCandidateService(candidateRepo, electionRepo, partyRepo, voteRepo)),
		Parties:    handler.NewPartyHandler(services.NewPartyService(partyRepo)),
		Voters:     handler.NewVoterHandler(services.NewVoterService(voterRepo)),
	}, auth.NewJWTVerifier(jwtSecret), []string{"*"})

	server := httptest.NewServer(router)

	return &TestApp{
		DB:          db,
		Server:      server,
		Client:      server.Client(),
		SummarySvc:  summarySvc,
		DBContainer: dbContainer,

		OfficialToken: signToken(t, uuid.New(), domain.RoleOfficial),
	}
}

func (app *TestApp) Teardown(t *testing.T) {
	app.Server.Close()
	app.DB.Close()
	if err := app.DBContainer.Terminate(context.Background()); err != nil {
		t.Logf("failed to terminate container: %v", err)
	}
}

func tokenFor(t *testing.T, voterID uuid.UUID) string {
	t.Helper()
	return signToken(t, voterID, "")
}

func signToken(t *testing.T, voterID uuid.UUID, role string) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub": voterID.String(),
		"exp": time.Now().Add(15 * time.Minute).Unix(),
		"iat": time.Now().Unix(),
	}
	if role != "" {
		claims["role"] = role
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(jwtSecret))
	require.NoError(t, err)
	return signedToken
}

// call sends a JSON request and decodes a JSON response into out when out is not nil.
func (app *TestApp) call(t *testing.T, method, path string, body any, token string, out any) int {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, app.Server.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
	}

	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < 300 {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}
