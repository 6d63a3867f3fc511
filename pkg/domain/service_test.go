package domain

import (
	"context"
	"io/ioutil"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// region processListMock
type processListMock struct {
	mock.Mock
}

func (m *processListMock) ProcessNames(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

// endregion

// region volumeListerMock
type volumeListerMock struct {
	mock.Mock
}

func (m *volumeListerMock) ListVolumes(ctx context.Context) ([]Volume, error) {
	args := m.Called(ctx)
	return args.Get(0).([]Volume), args.Error(1)
}

// endregion

// region fileCopierMock
type fileCopierMock struct {
	mock.Mock
}

func (m *fileCopierMock) CopyAll(ctx context.Context, sources []string, destDir string, proceed bool) (CopyResult, error) {
	args := m.Called(ctx, sources, destDir, proceed)
	return args.Get(0).(CopyResult), args.Error(1)
}

// endregion

// region runRepositoryMock
type runRepositoryMock struct {
	mock.Mock
}

func (m *runRepositoryMock) Create(ctx context.Context, run Run) (Run, error) {
	args := m.Called(ctx, run)
	return args.Get(0).(Run), args.Error(1)
}

func (m *runRepositoryMock) Update(ctx context.Context, run Run) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *runRepositoryMock) FindRecent(ctx context.Context, limit int) ([]Run, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]Run), args.Error(1)
}

// endregion

func discardLogger() *logrus.Logger {
	logger := logrus.New()
	logger.Out = ioutil.Discard

	return logger
}

func testService(plan Plan) (*BackupService, *processListMock, *volumeListerMock, *fileCopierMock, *runRepositoryMock) {
	processes := &processListMock{}
	volumes := &volumeListerMock{}
	copier := &fileCopierMock{}
	repo := &runRepositoryMock{}

	svc := NewBackupService(discardLogger(), plan, processes, volumes, copier, repo)
	svc.now = func() time.Time {
		t, _ := time.Parse(time.RFC3339, "2024-01-01T12:00:00Z")
		return t
	}

	return svc, processes, volumes, copier, repo
}

// region Test: IsGuardedProcessActive
func TestService_IsGuardedProcessActive_MatchesCaseInsensitively(t *testing.T) {
	svc, processes, _, _, _ := testService(Plan{ProcessName: "OUTLOOK.EXE"})

	processes.On("ProcessNames", mock.Anything).
		Return([]string{"explorer.exe", "Outlook.exe"}, nil)

	active, err := svc.IsGuardedProcessActive(context.Background())

	assert.Nil(t, err)
	assert.True(t, active)
}

func TestService_IsGuardedProcessActive_NotRunning(t *testing.T) {
	svc, processes, _, _, _ := testService(Plan{ProcessName: "OUTLOOK.EXE"})

	processes.On("ProcessNames", mock.Anything).
		Return([]string{"explorer.exe", "outlook-helper.exe"}, nil)

	active, err := svc.IsGuardedProcessActive(context.Background())

	assert.Nil(t, err)
	assert.False(t, active)
}

// endregion

// region Test: FindVolume
func TestService_FindVolume_PreferredExists(t *testing.T) {
	svc, _, volumes, _, _ := testService(Plan{})

	volumes.On("ListVolumes", mock.Anything).
		Return([]Volume{
			{Id: "/", Removable: false},
			{Id: "/media/usb0", Removable: true},
			{Id: "/mnt/data", Removable: false},
		}, nil)

	// an explicitly named volume wins even when it is not removable
	volume, ok, err := svc.FindVolume(context.Background(), "/mnt/data")

	assert.Nil(t, err)
	assert.True(t, ok)
	assert.Equal(t, "/mnt/data", volume)
}

func TestService_FindVolume_PreferredMissingFallsBackToScan(t *testing.T) {
	svc, _, volumes, _, _ := testService(Plan{})

	volumes.On("ListVolumes", mock.Anything).
		Return([]Volume{
			{Id: "/", Removable: false},
			{Id: "/media/usb0", Removable: true},
			{Id: "/media/usb1", Removable: true},
		}, nil)

	volume, ok, err := svc.FindVolume(context.Background(), "/media/gone")

	assert.Nil(t, err)
	assert.True(t, ok)
	assert.Equal(t, "/media/usb0", volume)
}

func TestService_FindVolume_NoRemovable(t *testing.T) {
	svc, _, volumes, _, _ := testService(Plan{})

	volumes.On("ListVolumes", mock.Anything).
		Return([]Volume{{Id: "/", Removable: false}}, nil)

	volume, ok, err := svc.FindVolume(context.Background(), "")

	assert.Nil(t, err)
	assert.False(t, ok)
	assert.Equal(t, "", volume)
}

// endregion

// region Test: Execute
func TestService_Execute_ProcessActiveAborts(t *testing.T) {
	svc, processes, volumes, copier, repo := testService(Plan{ProcessName: "OUTLOOK.EXE"})

	processes.On("ProcessNames", mock.Anything).
		Return([]string{"outlook.exe"}, nil)

	_, err := svc.Execute(context.Background(), true)

	assert.Equal(t, ErrProcessActive, err)
	volumes.AssertNotCalled(t, "ListVolumes", mock.Anything)
	copier.AssertNotCalled(t, "CopyAll", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Execute_NoVolumeAborts(t *testing.T) {
	svc, processes, volumes, copier, repo := testService(Plan{ProcessName: "OUTLOOK.EXE"})

	processes.On("ProcessNames", mock.Anything).
		Return([]string{"explorer.exe"}, nil)

	volumes.On("ListVolumes", mock.Anything).
		Return([]Volume{{Id: "/", Removable: false}}, nil)

	_, err := svc.Execute(context.Background(), true)

	assert.Equal(t, ErrNoVolume, err)
	copier.AssertNotCalled(t, "CopyAll", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Execute_HappyPath(t *testing.T) {
	plan := Plan{
		ProcessName:     "OUTLOOK.EXE",
		BaseFolder:      "OutlookBackups",
		Sources:         []string{"/home/user/a.txt", "/home/user/b.txt"},
		PreferredVolume: "X",
	}

	svc, processes, volumes, copier, repo := testService(plan)

	processes.On("ProcessNames", mock.Anything).
		Return([]string{"explorer.exe"}, nil)

	volumes.On("ListVolumes", mock.Anything).
		Return([]Volume{{Id: "X", Removable: true}}, nil)

	createdRun := Run{
		Id:          42,
		Volume:      "X",
		Destination: "X/OutlookBackups/20240101_120000",
		ExecStatus:  ExecStatusCreated,
	}

	repo.On("Create", mock.Anything, mock.AnythingOfType("Run")).Return(createdRun, nil)

	copier.On("CopyAll", mock.Anything, plan.Sources, "X/OutlookBackups/20240101_120000", true).
		Return(CopyResult{Done: true, Copied: 2}, nil)

	repo.On("Update", mock.Anything, mock.AnythingOfType("Run")).Return(nil)

	run, err := svc.Execute(context.Background(), true)

	assert.Nil(t, err)
	assert.Equal(t, "X/OutlookBackups/20240101_120000", run.Destination)
	assert.Equal(t, ExecStatusSuccess, run.ExecStatus)
	assert.Equal(t, int64(2), run.FilesCopied)
	assert.NotNil(t, run.FinishedAt)
}

func TestService_Execute_CopyFailureMarksRunFailed(t *testing.T) {
	plan := Plan{
		ProcessName:     "OUTLOOK.EXE",
		BaseFolder:      "OutlookBackups",
		Sources:         []string{"/home/user/a.txt"},
		PreferredVolume: "X",
	}

	svc, processes, volumes, copier, repo := testService(plan)

	processes.On("ProcessNames", mock.Anything).
		Return([]string{}, nil)

	volumes.On("ListVolumes", mock.Anything).
		Return([]Volume{{Id: "X", Removable: true}}, nil)

	repo.On("Create", mock.Anything, mock.AnythingOfType("Run")).
		Return(Run{Id: 7, ExecStatus: ExecStatusCreated}, nil)

	copyErr := errors.New("disk detached")

	copier.On("CopyAll", mock.Anything, plan.Sources, mock.Anything, true).
		Return(CopyResult{Done: false, Copied: 1}, copyErr)

	repo.On("Update", mock.Anything, mock.MatchedBy(func(run Run) bool {
		return run.ExecStatus == ExecStatusFailure
	})).Return(nil)

	run, err := svc.Execute(context.Background(), true)

	assert.Equal(t, copyErr, err)
	assert.Equal(t, ExecStatusFailure, run.ExecStatus)
	repo.AssertExpectations(t)
}

func TestService_Execute_JournalFailureDoesNotFailRun(t *testing.T) {
	plan := Plan{
		ProcessName:     "OUTLOOK.EXE",
		BaseFolder:      "OutlookBackups",
		Sources:         []string{"/home/user/a.txt"},
		PreferredVolume: "X",
	}

	svc, processes, volumes, copier, repo := testService(plan)

	processes.On("ProcessNames", mock.Anything).
		Return([]string{}, nil)

	volumes.On("ListVolumes", mock.Anything).
		Return([]Volume{{Id: "X", Removable: true}}, nil)

	repo.On("Create", mock.Anything, mock.AnythingOfType("Run")).
		Return(Run{}, errors.New("database is locked"))

	copier.On("CopyAll", mock.Anything, plan.Sources, mock.Anything, true).
		Return(CopyResult{Done: true, Copied: 1}, nil)

	repo.On("Update", mock.Anything, mock.AnythingOfType("Run")).
		Return(errors.New("database is locked"))

	run, err := svc.Execute(context.Background(), true)

	assert.Nil(t, err)
	assert.Equal(t, ExecStatusSuccess, run.ExecStatus)
}

func TestService_Execute_NoProceedSkipsJournalAndCopy(t *testing.T) {
	plan := Plan{
		ProcessName:     "OUTLOOK.EXE",
		BaseFolder:      "OutlookBackups",
		Sources:         []string{"/home/user/a.txt"},
		PreferredVolume: "X",
	}

	svc, processes, volumes, copier, repo := testService(plan)

	processes.On("ProcessNames", mock.Anything).
		Return([]string{}, nil)

	volumes.On("ListVolumes", mock.Anything).
		Return([]Volume{{Id: "X", Removable: true}}, nil)

	copier.On("CopyAll", mock.Anything, plan.Sources, "X/OutlookBackups/20240101_120000", false).
		Return(CopyResult{}, nil)

	run, err := svc.Execute(context.Background(), false)

	assert.Nil(t, err)
	assert.Equal(t, "X/OutlookBackups/20240101_120000", run.Destination)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	copier.AssertExpectations(t)
}

// endregion
