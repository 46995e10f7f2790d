// Package integration provides integration tests for the credential
// encryption workflow against real databases.
package integration

import (
	"bytes"
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authzRepository "github.com/allisson/workspaces/internal/authz/repository"
	authzUsecase "github.com/allisson/workspaces/internal/authz/usecase"
	credentialsDomain "github.com/allisson/workspaces/internal/credentials/domain"
	credentialsRepository "github.com/allisson/workspaces/internal/credentials/repository"
	credentialsUsecase "github.com/allisson/workspaces/internal/credentials/usecase"
	cryptoDomain "github.com/allisson/workspaces/internal/crypto/domain"
	cryptoService "github.com/allisson/workspaces/internal/crypto/service"
	"github.com/allisson/workspaces/internal/database"
	apperrors "github.com/allisson/workspaces/internal/errors"
	tasksRepository "github.com/allisson/workspaces/internal/tasks/repository"
	"github.com/allisson/workspaces/internal/testutil"
	workspacesDomain "github.com/allisson/workspaces/internal/workspaces/domain"
	workspacesRepository "github.com/allisson/workspaces/internal/workspaces/repository"
	workspacesUsecase "github.com/allisson/workspaces/internal/workspaces/usecase"
)

// credentialTestContext bundles the use cases wired against a live database.
type credentialTestContext struct {
	db           *sql.DB
	driver       string
	workspaceUC  workspacesUsecase.WorkspaceUseCase
	credentialUC credentialsUsecase.CredentialUseCase
}

// setupCredentialTestContext wires real repositories, the ownership resolver,
// and a disposable keyset against the given database.
func setupCredentialTestContext(t *testing.T, driver string, db *sql.DB) *credentialTestContext {
	t.Helper()

	keyset, err := cryptoDomain.NewKeyset([]*cryptoDomain.Key{
		{Version: 1, Material: bytes.Repeat([]byte{0x42}, cryptoDomain.KeySize)},
	}, 1)
	require.NoError(t, err)
	t.Cleanup(keyset.Close)

	fieldCipher := cryptoService.NewFieldCipher(keyset, cryptoDomain.AESGCM, cryptoService.NewAEADManager())
	txManager := database.NewTxManager(db)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	var (
		workspaceRepo  workspacesUsecase.WorkspaceRepository
		memberRepo     workspacesUsecase.MemberRepository
		taskRepo       authzRepository.ResourceLookup
		credentialRepo credentialsUsecase.CredentialRepository
		credentialLkup authzRepository.ResourceLookup
	)
	if driver == "mysql" {
		workspaceRepo = workspacesRepository.NewMySQLWorkspaceRepository(db)
		memberRepo = workspacesRepository.NewMySQLMemberRepository(db)
		taskRepo = tasksRepository.NewMySQLTaskRepository(db)
		mysqlCredentialRepo := credentialsRepository.NewMySQLCredentialRepository(db)
		credentialRepo = mysqlCredentialRepo
		credentialLkup = mysqlCredentialRepo
	} else {
		workspaceRepo = workspacesRepository.NewPostgreSQLWorkspaceRepository(db)
		memberRepo = workspacesRepository.NewPostgreSQLMemberRepository(db)
		taskRepo = tasksRepository.NewPostgreSQLTaskRepository(db)
		postgresCredentialRepo := credentialsRepository.NewPostgreSQLCredentialRepository(db)
		credentialRepo = postgresCredentialRepo
		credentialLkup = postgresCredentialRepo
	}

	resourceRepo := authzRepository.NewCompositeResourceRepository(taskRepo, credentialLkup)
	resolver := authzUsecase.NewOwnershipResolver(txManager, resourceRepo, workspaceRepo, memberRepo)

	return &credentialTestContext{
		db:           db,
		driver:       driver,
		workspaceUC:  workspacesUsecase.NewWorkspaceUseCase(txManager, workspaceRepo, memberRepo, resolver),
		credentialUC: credentialsUsecase.NewCredentialUseCase(txManager, credentialRepo, resolver, fieldCipher, logger),
	}
}

// corruptStoredEnvelope overwrites the persisted envelope with junk so the
// read path's malformed-envelope handling can be observed end to end.
func corruptStoredEnvelope(t *testing.T, db *sql.DB, driver string, workspaceID uuid.UUID, field string) {
	t.Helper()

	ctx := context.Background()
	var err error
	if driver == "mysql" {
		idValue, marshalErr := workspaceID.MarshalBinary()
		require.NoError(t, marshalErr)
		_, err = db.ExecContext(ctx,
			"UPDATE credentials SET envelope = ? WHERE workspace_id = ? AND field = ?",
			"{not an envelope", idValue, field,
		)
	} else {
		_, err = db.ExecContext(ctx,
			"UPDATE credentials SET envelope = $1 WHERE workspace_id = $2 AND field = $3",
			"{not an envelope", workspaceID, field,
		)
	}
	require.NoError(t, err)
}

// TestCredentialRoundTrip_EndToEnd verifies the store, resolve, rotate, and
// delete workflow through real repositories and the ownership resolver.
func TestCredentialRoundTrip_EndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	dbConfigs := []struct {
		name   string
		driver string
		skip   func(t *testing.T)
		setup  func(t *testing.T) *sql.DB
	}{
		{
			name:   "PostgreSQL",
			driver: "postgres",
			skip:   testutil.SkipIfNoPostgres,
			setup:  testutil.SetupPostgresDB,
		},
		{
			name:   "MySQL",
			driver: "mysql",
			skip:   testutil.SkipIfNoMySQL,
			setup:  testutil.SetupMySQLDB,
		},
	}

	for _, dbConfig := range dbConfigs {
		t.Run(dbConfig.name, func(t *testing.T) {
			dbConfig.skip(t)

			ctx := context.Background()
			db := dbConfig.setup(t)
			defer testutil.TeardownDB(t, db)

			testCtx := setupCredentialTestContext(t, dbConfig.driver, db)

			ownerID := uuid.Must(uuid.NewV7())
			viewerID := uuid.Must(uuid.NewV7())
			strangerID := uuid.Must(uuid.NewV7())

			workspace, err := testCtx.workspaceUC.Create(ctx, ownerID, "Deploy Pipeline", "deploy-pipeline")
			require.NoError(t, err)

			_, err = testCtx.workspaceUC.AddMember(ctx, workspace.Slug, ownerID, viewerID, workspacesDomain.RoleViewer)
			require.NoError(t, err)

			// Store and resolve by the owner
			credential, err := testCtx.credentialUC.Store(ctx, workspace.Slug, ownerID, "github_token", "ghp_original")
			require.NoError(t, err)
			assert.Equal(t, workspace.ID, credential.WorkspaceID)
			assert.Equal(t, ownerID, credential.CreatedByID)

			plaintext, err := testCtx.credentialUC.Resolve(ctx, workspace.Slug, ownerID, "github_token")
			require.NoError(t, err)
			assert.Equal(t, "ghp_original", plaintext)

			// Viewer can read but not write
			plaintext, err = testCtx.credentialUC.Resolve(ctx, workspace.Slug, viewerID, "github_token")
			require.NoError(t, err)
			assert.Equal(t, "ghp_original", plaintext)

			_, err = testCtx.credentialUC.Store(ctx, workspace.Slug, viewerID, "github_token", "ghp_hijacked")
			assert.ErrorIs(t, err, apperrors.ErrForbidden)

			// Non-member cannot observe the field at all
			_, err = testCtx.credentialUC.Resolve(ctx, workspace.Slug, strangerID, "github_token")
			assert.ErrorIs(t, err, credentialsDomain.ErrCredentialNotFound)

			// Storing again rotates the envelope in place
			rotated, err := testCtx.credentialUC.Store(ctx, workspace.Slug, ownerID, "github_token", "ghp_rotated")
			require.NoError(t, err)
			assert.Equal(t, credential.ID, rotated.ID)
			assert.NotEqual(t, credential.Envelope, rotated.Envelope)

			plaintext, err = testCtx.credentialUC.Resolve(ctx, workspace.Slug, ownerID, "github_token")
			require.NoError(t, err)
			assert.Equal(t, "ghp_rotated", plaintext)

			// Listing exposes metadata only
			credentials, err := testCtx.credentialUC.List(ctx, workspace.Slug, viewerID, 0, 50)
			require.NoError(t, err)
			require.Len(t, credentials, 1)
			assert.Equal(t, "github_token", credentials[0].Field)

			// A corrupted row reads back as not found instead of an error detail
			corruptStoredEnvelope(t, db, dbConfig.driver, workspace.ID, "github_token")
			_, err = testCtx.credentialUC.Resolve(ctx, workspace.Slug, ownerID, "github_token")
			assert.ErrorIs(t, err, credentialsDomain.ErrCredentialNotFound)

			// Repair by rotating, then delete
			_, err = testCtx.credentialUC.Store(ctx, workspace.Slug, ownerID, "github_token", "ghp_repaired")
			require.NoError(t, err)

			err = testCtx.credentialUC.Delete(ctx, workspace.Slug, ownerID, "github_token")
			require.NoError(t, err)

			_, err = testCtx.credentialUC.Resolve(ctx, workspace.Slug, ownerID, "github_token")
			assert.ErrorIs(t, err, credentialsDomain.ErrCredentialNotFound)

			// The field is reusable after deletion
			fresh, err := testCtx.credentialUC.Store(ctx, workspace.Slug, ownerID, "github_token", "ghp_fresh")
			require.NoError(t, err)
			assert.NotEqual(t, credential.ID, fresh.ID)

			if dbConfig.driver == "mysql" {
				testutil.CleanupMySQLDB(t, db)
			} else {
				testutil.CleanupPostgresDB(t, db)
			}
		})
	}
}
