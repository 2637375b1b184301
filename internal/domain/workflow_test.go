package domain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meowcode.dev/pkg/meowcode/internal/adapter"
	m "meowcode.dev/pkg/meowcode/internal/model"
)

type fakeSourceFS struct {
	adapter.SourceFSAdapter
	files []m.File
	err   error
	paths []m.Path
	opts  adapter.DiscoverOptions
}

func (f *fakeSourceFS) Get(_ context.Context, paths []m.Path, opts adapter.DiscoverOptions) ([]m.File, error) {
	f.paths = paths
	f.opts = opts

	return f.files, f.err
}

type fakeRegistryStore struct {
	registry m.Registry
	err      error
	loaded   m.Path
}

func (f *fakeRegistryStore) Load(_ context.Context, path m.Path) (m.Registry, error) {
	f.loaded = path
	return f.registry, f.err
}

type fakeUI struct {
	disabled   bool
	discovered int
	results    []m.FileResult
	diffs      int
	summary    *m.Summary
	registry   *m.Registry
}

func (f *fakeUI) DisplayDisabled(context.Context) { f.disabled = true }

func (f *fakeUI) DisplayDiscovered(_ context.Context, count int) { f.discovered = count }

func (f *fakeUI) DisplayFileResult(_ context.Context, result m.FileResult) {
	f.results = append(f.results, result)
}

func (f *fakeUI) DisplayDiff(context.Context, m.FileResult) error {
	f.diffs++
	return nil
}

func (f *fakeUI) DisplaySummary(_ context.Context, summary m.Summary, _ []m.FileResult) {
	f.summary = &summary
}

func (f *fakeUI) DisplayRegistry(_ context.Context, registry m.Registry) error {
	f.registry = &registry
	return nil
}

type fakeCodegen struct {
	statuses map[m.Path]m.Status
	opts     []ProcessOptions
	stripped []m.Path
}

func (f *fakeCodegen) ProcessFile(_ context.Context, file m.File, _ m.Registry, opts ProcessOptions) m.FileResult {
	f.opts = append(f.opts, opts)

	result := m.FileResult{File: file, Status: f.statuses[file.ShortPath]}
	if result.Status == m.StatusFailed {
		result.Err = errors.New("boom")
	}

	return result
}

func (f *fakeCodegen) StripFile(_ context.Context, file m.File, opts ProcessOptions) m.FileResult {
	f.opts = append(f.opts, opts)
	f.stripped = append(f.stripped, file.ShortPath)

	return m.FileResult{File: file, Status: f.statuses[file.ShortPath]}
}

func testFiles(names ...string) []m.File {
	files := make([]m.File, 0, len(names))
	for _, name := range names {
		files = append(files, m.File{FullPath: m.Path("/src/" + name), ShortPath: m.Path(name)})
	}

	return files
}

func TestWorkflow_Run(t *testing.T) {
	fs := &fakeSourceFS{files: testFiles("A.cs", "B.cs", "C.cs")}
	store := &fakeRegistryStore{registry: widgetRegistry()}
	ui := &fakeUI{}
	cg := &fakeCodegen{statuses: map[m.Path]m.Status{
		"A.cs": m.StatusUpdated,
		"B.cs": m.StatusUnchanged,
		"C.cs": m.StatusSkipped,
	}}

	wf := NewWorkflow(fs, store, ui, cg)

	args := RunArgs{
		SourceArgs: SourceArgs{
			Paths:    []m.Path{"./Assets/..."},
			Discover: adapter.DiscoverOptions{Include: []string{"**/*.cs"}, UseGitignore: true},
		},
		Registry: "meowcode.registry.yaml",
		Enabled:  true,
	}

	summary, err := wf.Run(context.Background(), args)
	require.NoError(t, err)

	assert.Equal(t, m.Summary{Updated: 1, Unchanged: 1, Skipped: 1}, summary)
	assert.Equal(t, m.Path("meowcode.registry.yaml"), store.loaded)
	assert.Equal(t, []m.Path{"./Assets/..."}, fs.paths)
	assert.Equal(t, args.Discover, fs.opts)
	assert.Equal(t, 3, ui.discovered)
	require.Len(t, ui.results, 3)
	assert.Equal(t, m.Path("A.cs"), ui.results[0].File.ShortPath)
	assert.Equal(t, m.Path("C.cs"), ui.results[2].File.ShortPath)
	assert.Zero(t, ui.diffs)
	require.NotNil(t, ui.summary)
	assert.Equal(t, summary, *ui.summary)
}

func TestWorkflow_Run_Disabled(t *testing.T) {
	fs := &fakeSourceFS{files: testFiles("A.cs")}
	store := &fakeRegistryStore{err: errors.New("must not load")}
	ui := &fakeUI{}
	cg := &fakeCodegen{}

	summary, err := NewWorkflow(fs, store, ui, cg).Run(context.Background(), RunArgs{Enabled: false})

	require.NoError(t, err)
	assert.Zero(t, summary.Total())
	assert.True(t, ui.disabled)
	assert.Empty(t, store.loaded)
	assert.Empty(t, cg.opts)
}

func TestWorkflow_Run_RegistryError(t *testing.T) {
	store := &fakeRegistryStore{err: errors.New("bad yaml")}
	cg := &fakeCodegen{}

	_, err := NewWorkflow(&fakeSourceFS{}, store, &fakeUI{}, cg).Run(context.Background(), RunArgs{Enabled: true})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "load registry")
	assert.Empty(t, cg.opts)
}

func TestWorkflow_Run_DiscoveryError(t *testing.T) {
	fs := &fakeSourceFS{err: errors.New("root path error")}
	ui := &fakeUI{}

	_, err := NewWorkflow(fs, &fakeRegistryStore{}, ui, &fakeCodegen{}).Run(context.Background(), RunArgs{Enabled: true})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "discover sources")
	assert.Nil(t, ui.summary)
}

func TestWorkflow_Run_FailedFileDoesNotStopPass(t *testing.T) {
	fs := &fakeSourceFS{files: testFiles("A.cs", "B.cs", "C.cs")}
	ui := &fakeUI{}
	cg := &fakeCodegen{statuses: map[m.Path]m.Status{
		"A.cs": m.StatusFailed,
		"B.cs": m.StatusUpdated,
		"C.cs": m.StatusFailed,
	}}

	summary, err := NewWorkflow(fs, &fakeRegistryStore{}, ui, cg).Run(context.Background(), RunArgs{Enabled: true})

	require.ErrorIs(t, err, ErrFilesFailed)
	assert.Contains(t, err.Error(), "2 file(s)")
	assert.Equal(t, m.Summary{Failed: 2, Updated: 1}, summary)
	assert.Len(t, ui.results, 3)
	assert.NotNil(t, ui.summary)
}

func TestWorkflow_Run_DryRun(t *testing.T) {
	fs := &fakeSourceFS{files: testFiles("A.cs", "B.cs")}
	ui := &fakeUI{}
	cg := &fakeCodegen{statuses: map[m.Path]m.Status{"A.cs": m.StatusUpdated, "B.cs": m.StatusUnchanged}}

	summary, err := NewWorkflow(fs, &fakeRegistryStore{}, ui, cg).Run(context.Background(), RunArgs{Enabled: true, DryRun: true})

	require.ErrorIs(t, err, ErrOutOfDate)
	assert.Equal(t, 1, summary.Updated)
	assert.Equal(t, 2, ui.diffs)
	require.Len(t, cg.opts, 2)
	assert.True(t, cg.opts[0].DryRun)
}

func TestWorkflow_Run_DryRunUpToDate(t *testing.T) {
	fs := &fakeSourceFS{files: testFiles("A.cs")}
	cg := &fakeCodegen{statuses: map[m.Path]m.Status{"A.cs": m.StatusUnchanged}}

	_, err := NewWorkflow(fs, &fakeRegistryStore{}, &fakeUI{}, cg).Run(context.Background(), RunArgs{Enabled: true, DryRun: true})

	assert.NoError(t, err)
}

func TestWorkflow_Run_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fs := &fakeSourceFS{files: testFiles("A.cs", "B.cs")}
	cg := &fakeCodegen{statuses: map[m.Path]m.Status{}}

	_, err := NewWorkflow(fs, &fakeRegistryStore{}, &fakeUI{}, cg).Run(ctx, RunArgs{Enabled: true})

	require.ErrorIs(t, err, context.Canceled)
}

func TestWorkflow_Strip(t *testing.T) {
	fs := &fakeSourceFS{files: testFiles("A.cs", "B.cs")}
	ui := &fakeUI{}
	cg := &fakeCodegen{statuses: map[m.Path]m.Status{"A.cs": m.StatusUpdated, "B.cs": m.StatusUnchanged}}

	summary, err := NewWorkflow(fs, &fakeRegistryStore{}, ui, cg).Strip(context.Background(), StripArgs{DryRun: true})

	require.NoError(t, err)
	assert.Equal(t, m.Summary{Updated: 1, Unchanged: 1}, summary)
	assert.Equal(t, []m.Path{"A.cs", "B.cs"}, cg.stripped)
	assert.Equal(t, 2, ui.diffs)
}

func TestWorkflow_ShowRegistry(t *testing.T) {
	store := &fakeRegistryStore{registry: widgetRegistry()}
	ui := &fakeUI{}

	err := NewWorkflow(&fakeSourceFS{}, store, ui, &fakeCodegen{}).ShowRegistry(context.Background(), RegistryArgs{Registry: "custom.yaml"})

	require.NoError(t, err)
	assert.Equal(t, m.Path("custom.yaml"), store.loaded)
	require.NotNil(t, ui.registry)
	assert.Equal(t, 1, ui.registry.Len())

	store.err = errors.New("missing")
	assert.Error(t, NewWorkflow(&fakeSourceFS{}, store, ui, &fakeCodegen{}).ShowRegistry(context.Background(), RegistryArgs{}))
}
