package sqlite

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timesheet-api/internal/domain"
)

func createUser(t *testing.T, db *sql.DB, email string) *domain.User {
	t.Helper()
	user := &domain.User{Email: email, PasswordHash: "hash", FirstName: "Ada", LastName: "Lovelace"}
	_, err := NewUserRepository(db).Create(context.Background(), user)
	require.NoError(t, err)
	return user
}

func createProject(t *testing.T, db *sql.DB, ownerID int64, name string) *domain.Project {
	t.Helper()
	project := &domain.Project{Name: name, Description: name + " description", OwnerID: ownerID}
	_, err := NewProjectRepository(db).Create(context.Background(), project)
	require.NoError(t, err)
	return project
}

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := domain.ParseDate(value)
	require.NoError(t, err)
	return d
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewUserRepository(db)

	user := createUser(t, db, "ada@example.com")
	require.NotZero(t, user.ID)

	byEmail, err := repo.GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)
	assert.Equal(t, "hash", byEmail.PasswordHash)
	assert.Equal(t, "Ada", byEmail.FirstName)
	assert.Equal(t, "Lovelace", byEmail.LastName)

	byID, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", byID.Email)

	_, err = repo.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserRepositoryRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewUserRepository(db)
	createUser(t, db, "dup@example.com")

	_, err := repo.Create(ctx, &domain.User{Email: "dup@example.com", PasswordHash: "x", FirstName: "a", LastName: "b"})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM users WHERE email = ?`, "dup@example.com").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestProjectRepositoryListsNewestFirstPerOwner(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewProjectRepository(db)
	alice := createUser(t, db, "alice@example.com")
	bob := createUser(t, db, "bob@example.com")

	first := createProject(t, db, alice.ID, "first")
	second := createProject(t, db, alice.ID, "second")
	createProject(t, db, bob.ID, "bob's")

	projects, err := repo.ListByOwner(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, second.ID, projects[0].ID)
	assert.Equal(t, first.ID, projects[1].ID)
	for _, p := range projects {
		assert.Equal(t, alice.ID, p.OwnerID)
	}

	none, err := repo.ListByOwner(ctx, 9999)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestTimesheetRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewTimesheetRepository(db)
	user := createUser(t, db, "ts@example.com")
	project := createProject(t, db, user.ID, "alpha")

	sheet := &domain.Timesheet{
		UserID:    user.ID,
		ProjectID: project.ID,
		Date:      mustDate(t, "2024-01-01"),
		Hours:     8,
		Note:      "x",
	}
	_, err := repo.Create(ctx, sheet)
	require.NoError(t, err)

	got, err := repo.GetForUser(ctx, sheet.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, project.ID, got.ProjectID)
	assert.Equal(t, "2024-01-01", domain.FormatDate(got.Date))
	assert.Equal(t, 8.0, got.Hours)
	assert.Equal(t, "x", got.Note)
	require.NotNil(t, got.Project)
	assert.Equal(t, "alpha", got.Project.Name)
	assert.Equal(t, user.ID, got.Project.OwnerID)
}

func TestTimesheetRepositoryOwnershipScoping(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewTimesheetRepository(db)
	owner := createUser(t, db, "owner@example.com")
	intruder := createUser(t, db, "intruder@example.com")
	project := createProject(t, db, owner.ID, "alpha")

	sheet := &domain.Timesheet{UserID: owner.ID, ProjectID: project.ID, Date: mustDate(t, "2024-05-01"), Hours: 4}
	_, err := repo.Create(ctx, sheet)
	require.NoError(t, err)

	_, err = repo.GetForUser(ctx, sheet.ID, intruder.ID)
	assert.ErrorIs(t, err, domain.ErrTimesheetNotFound)

	foreign := *sheet
	foreign.UserID = intruder.ID
	foreign.Hours = 1
	assert.ErrorIs(t, repo.UpdateForUser(ctx, &foreign), domain.ErrTimesheetNotFound)
	assert.ErrorIs(t, repo.DeleteForUser(ctx, sheet.ID, intruder.ID), domain.ErrTimesheetNotFound)

	listed, err := repo.ListByUser(ctx, intruder.ID, domain.TimesheetFilter{})
	require.NoError(t, err)
	assert.Empty(t, listed)

	unchanged, err := repo.GetForUser(ctx, sheet.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.0, unchanged.Hours)
}

func TestTimesheetRepositoryUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewTimesheetRepository(db)
	user := createUser(t, db, "u@example.com")
	alpha := createProject(t, db, user.ID, "alpha")
	beta := createProject(t, db, user.ID, "beta")

	sheet := &domain.Timesheet{UserID: user.ID, ProjectID: alpha.ID, Date: mustDate(t, "2024-05-01"), Hours: 4}
	_, err := repo.Create(ctx, sheet)
	require.NoError(t, err)

	sheet.ProjectID = beta.ID
	sheet.Date = mustDate(t, "2024-05-02")
	sheet.Hours = 6.5
	sheet.Note = "moved"
	require.NoError(t, repo.UpdateForUser(ctx, sheet))

	got, err := repo.GetForUser(ctx, sheet.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, beta.ID, got.ProjectID)
	assert.Equal(t, "beta", got.Project.Name)
	assert.Equal(t, "2024-05-02", domain.FormatDate(got.Date))
	assert.Equal(t, 6.5, got.Hours)
	assert.Equal(t, "moved", got.Note)

	require.NoError(t, repo.DeleteForUser(ctx, sheet.ID, user.ID))
	assert.ErrorIs(t, repo.DeleteForUser(ctx, sheet.ID, user.ID), domain.ErrTimesheetNotFound)
}

func TestTimesheetRepositoryRejectsUnknownProject(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewTimesheetRepository(db)
	user := createUser(t, db, "u@example.com")

	_, err := repo.Create(ctx, &domain.Timesheet{UserID: user.ID, ProjectID: 4242, Date: mustDate(t, "2024-05-01"), Hours: 1})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestTimesheetRepositoryListOrderAndFilters(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewTimesheetRepository(db)
	user := createUser(t, db, "u@example.com")
	alpha := createProject(t, db, user.ID, "alpha")
	beta := createProject(t, db, user.ID, "beta")

	for _, entry := range []struct {
		project int64
		date    string
	}{
		{alpha.ID, "2024-01-03"},
		{beta.ID, "2024-01-01"},
		{alpha.ID, "2024-01-10"},
		{beta.ID, "2024-01-05"},
	} {
		_, err := repo.Create(ctx, &domain.Timesheet{UserID: user.ID, ProjectID: entry.project, Date: mustDate(t, entry.date), Hours: 1})
		require.NoError(t, err)
	}

	all, err := repo.ListByUser(ctx, user.ID, domain.TimesheetFilter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	var dates []string
	for _, s := range all {
		dates = append(dates, domain.FormatDate(s.Date))
		require.NotNil(t, s.Project)
	}
	assert.Equal(t, []string{"2024-01-10", "2024-01-05", "2024-01-03", "2024-01-01"}, dates)

	from := mustDate(t, "2024-01-03")
	to := mustDate(t, "2024-01-05")
	ranged, err := repo.ListByUser(ctx, user.ID, domain.TimesheetFilter{From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, ranged, 2)
	assert.Equal(t, "2024-01-05", domain.FormatDate(ranged[0].Date))
	assert.Equal(t, "2024-01-03", domain.FormatDate(ranged[1].Date))

	onlyBeta, err := repo.ListByUser(ctx, user.ID, domain.TimesheetFilter{ProjectID: beta.ID})
	require.NoError(t, err)
	require.Len(t, onlyBeta, 2)
	for _, s := range onlyBeta {
		assert.Equal(t, beta.ID, s.ProjectID)
	}
}

func TestReceiptRepositoryCascadesWithTimesheet(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	sheets := NewTimesheetRepository(db)
	receipts := NewReceiptRepository(db)
	user := createUser(t, db, "r@example.com")
	other := createUser(t, db, "o@example.com")
	project := createProject(t, db, user.ID, "alpha")

	sheet := &domain.Timesheet{UserID: user.ID, ProjectID: project.ID, Date: mustDate(t, "2024-05-01"), Hours: 2}
	_, err := sheets.Create(ctx, sheet)
	require.NoError(t, err)

	receipt := &domain.Receipt{
		TimesheetID: sheet.ID,
		UserID:      user.ID,
		ObjectKey:   "receipts/1/1/a.png",
		Filename:    "a.png",
		ContentType: "image/png",
		Size:        12,
	}
	_, err = receipts.Create(ctx, receipt)
	require.NoError(t, err)

	listed, err := receipts.ListByTimesheet(ctx, sheet.ID, user.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "a.png", listed[0].Filename)

	_, err = receipts.GetForUser(ctx, receipt.ID, other.ID)
	assert.ErrorIs(t, err, domain.ErrReceiptNotFound)

	require.NoError(t, sheets.DeleteForUser(ctx, sheet.ID, user.ID))
	_, err = receipts.GetForUser(ctx, receipt.ID, user.ID)
	assert.ErrorIs(t, err, domain.ErrReceiptNotFound)

	_, err = receipts.Create(ctx, &domain.Receipt{TimesheetID: sheet.ID, UserID: user.ID, ObjectKey: "k", ContentType: "image/png"})
	assert.ErrorIs(t, err, domain.ErrTimesheetNotFound)
}
