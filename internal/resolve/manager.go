package resolve

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/handiism/workparts/internal/config"
	wshttp "github.com/handiism/workparts/internal/http"
	ioutils "github.com/handiism/workparts/internal/io"
	"github.com/handiism/workparts/internal/model"
	"github.com/handiism/workparts/internal/musicbrainz"
	"github.com/handiism/workparts/internal/tags"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a resolution progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Manager coordinates album resolutions end to end: scanning a music
// directory, ascending the work hierarchy for every track, aggregating
// album-level results and writing the tags back.
type Manager struct {
	settings   *config.Settings
	log        *zap.Logger
	reader     *tags.Reader
	writer     *tags.Writer
	builder    *tags.Builder
	resolver   *Resolver
	aggregator *Aggregator
	cache      *Cache

	albums        []*model.Album
	totalTracks   int32
	settledTracks int32

	onProgress func(ProgressEvent)
}

// NewManager creates a resolution Manager from settings.
//
// onProgress receives human-readable progress updates and may be nil; it
// may be called from concurrent resolution goroutines, so the callback
// must be safe for concurrent use. The logger carries the structured
// debug trail and may also be nil.
func NewManager(settings *config.Settings, logger *zap.Logger, onProgress func(ProgressEvent)) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}

	transport := wshttp.NewClient(
		settings.UserAgent,
		settings.RequestsPerSecond,
		time.Duration(settings.LookupTimeout*float64(time.Second)),
	)
	client := musicbrainz.NewClient(transport, musicbrainz.Config{
		BaseURL:         settings.ServiceBaseURL,
		MaxAttempts:     settings.LookupMaxAttempts,
		InitialCooldown: time.Duration(settings.RetryInitialCooldown * float64(time.Second)),
		MaxCooldown:     time.Duration(settings.RetryMaxCooldown * float64(time.Second)),
		Logger:          logger,
	})

	cache := NewCache()
	return &Manager{
		settings:   settings,
		log:        logger,
		reader:     tags.NewReader(),
		writer:     tags.NewWriter(settings.TagNamespace),
		builder:    tags.NewBuilder(),
		resolver:   NewResolver(client, cache, logger),
		aggregator: NewAggregator(),
		cache:      cache,
		onProgress: onProgress,
	}
}

// Initialize scans the music root for albums and reads the input frames
// of every MP3 file found.
//
// Tracks without a MusicBrainz work id cannot be resolved and are skipped
// with a verbose event; directories whose tracks all lack one are dropped
// entirely.
func (m *Manager) Initialize(ctx context.Context, root string) error {
	found, err := ioutils.FindAlbums(root)
	if err != nil {
		return fmt.Errorf("scan %s: %w", root, err)
	}
	if len(found) == 0 {
		return fmt.Errorf("no MP3 files under %s", root)
	}

	for _, af := range found {
		if err := ctx.Err(); err != nil {
			return err
		}

		album := &model.Album{Dir: af.Dir}
		for _, path := range af.Files {
			track, err := m.reader.ReadTrack(path)
			if err != nil {
				m.progress(ProgressEvent{Message: fmt.Sprintf("Error reading %s: %v", path, err), Level: LevelError})
				continue
			}
			if track.LeafWorkID() == "" {
				m.progress(ProgressEvent{Message: fmt.Sprintf("Skipping %s: no work id", track.DisplayName()), Level: LevelVerbose})
				continue
			}
			album.Tracks = append(album.Tracks, track)
		}

		if len(album.Tracks) == 0 {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Skipping album %s: no resolvable tracks", album.Name()), Level: LevelVerbose})
			continue
		}

		m.albums = append(m.albums, album)
		m.totalTracks += int32(len(album.Tracks))
		m.progress(ProgressEvent{Message: fmt.Sprintf("Found album: %s (%d tracks)", album.Name(), len(album.Tracks)), Level: LevelInfo})
	}

	if len(m.albums) == 0 {
		return fmt.Errorf("no resolvable tracks under %s", root)
	}
	return nil
}

// StartResolutions resolves all initialized albums.
func (m *Manager) StartResolutions(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(m.settings.MaxConcurrentAlbums)

	for _, album := range m.albums {
		album := album // capture
		g.Go(func() error {
			return m.resolveAlbum(ctx, album)
		})
	}

	return g.Wait()
}

// GetProgress returns current resolution progress.
func (m *Manager) GetProgress() (settled, total int32) {
	return atomic.LoadInt32(&m.settledTracks), m.totalTracks
}

// GetAlbumNames returns the names of all initialized albums.
func (m *Manager) GetAlbumNames() []string {
	names := make([]string, len(m.albums))
	for i, album := range m.albums {
		names[i] = fmt.Sprintf("%s (%d tracks)", album.Name(), len(album.Tracks))
	}
	return names
}

func (m *Manager) resolveAlbum(ctx context.Context, album *model.Album) error {
	// Register every track up front so the album reads as pending before
	// the first lookup goes out.
	for range album.Tracks {
		m.aggregator.RegisterTrack(album.Key())
	}

	resolutions := make([]*model.TrackResolution, len(album.Tracks))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(m.settings.MaxConcurrentTracks)

	for i, track := range album.Tracks {
		i, track := i, track // capture
		g.Go(func() error {
			res, err := m.resolveTrack(ctx, track)
			if err != nil {
				return err
			}
			resolutions[i] = res
			m.aggregator.CompleteTrack(album.Key(), res)
			atomic.AddInt32(&m.settledTracks, 1)
			m.progress(ProgressEvent{Message: fmt.Sprintf("Resolved: %s (%d levels)", track.DisplayName(), res.Chain.Levels()), Level: LevelVerbose})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	summary, err := m.aggregator.Finalize(album.Key())
	if err != nil {
		return err
	}
	albumSet := tags.AlbumSet(summary.SingleWorkAlbum, summary.WorkPartLevels)

	warned := 0
	sets := make([]tags.Set, len(resolutions))
	for i, res := range resolutions {
		sets[i] = m.builder.Build(res).Merge(albumSet)
		if len(res.Warnings) > 0 {
			warned++
		}
	}

	if m.settings.ModifyTags {
		for i, res := range resolutions {
			if err := m.writer.Write(res.Track.Path, sets[i]); err != nil {
				m.progress(ProgressEvent{Message: fmt.Sprintf("Error tagging %s: %v", res.Track.DisplayName(), err), Level: LevelWarning})
			}
		}
	}

	if m.settings.WriteReport {
		if err := m.writeReport(ctx, album, summary, resolutions, sets); err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error writing report for %s: %v", album.Name(), err), Level: LevelWarning})
		}
	}

	if warned == 0 {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Successfully resolved album: %s", album.Name()), Level: LevelSuccess})
	} else {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Finished %s, %d tracks with warnings", album.Name(), warned), Level: LevelWarning})
	}

	return nil
}

func (m *Manager) resolveTrack(ctx context.Context, track *model.Track) (*model.TrackResolution, error) {
	res := &model.TrackResolution{Track: track}

	if len(track.WorkIDs) > 1 {
		res.Warn(fmt.Sprintf("WARNING: track carries %d work ids; following %s", len(track.WorkIDs), track.LeafWorkID()))
	}

	chain, warns, err := m.resolver.Resolve(ctx, track.LeafWorkID())
	if err != nil {
		return nil, err
	}
	res.Chain = chain
	res.Warnings = append(res.Warnings, warns...)
	return res, nil
}

// trackReport is one track's entry in the album report file.
type trackReport struct {
	Path     string            `json:"path"`
	Title    string            `json:"title"`
	Levels   int               `json:"levels"`
	Partial  bool              `json:"partial,omitempty"`
	Warnings []string          `json:"warnings,omitempty"`
	Tags     map[string]string `json:"tags"`
}

// albumReport is the JSON document written next to an album when
// write_report is enabled.
type albumReport struct {
	Album           string        `json:"album"`
	Dir             string        `json:"dir"`
	SingleWorkAlbum bool          `json:"single_work_album"`
	WorkPartLevels  int           `json:"work_part_levels"`
	Roots           int           `json:"roots"`
	Tracks          []trackReport `json:"tracks"`
}

func (m *Manager) writeReport(ctx context.Context, album *model.Album, summary AlbumSummary, resolutions []*model.TrackResolution, sets []tags.Set) error {
	report := albumReport{
		Album:           album.Name(),
		Dir:             album.Dir,
		SingleWorkAlbum: summary.SingleWorkAlbum,
		WorkPartLevels:  summary.WorkPartLevels,
		Roots:           summary.Roots,
	}
	for i, res := range resolutions {
		report.Tracks = append(report.Tracks, trackReport{
			Path:     res.Track.Path,
			Title:    res.Track.Title,
			Levels:   res.Chain.Levels(),
			Partial:  res.Chain.Partial,
			Warnings: res.Warnings,
			Tags:     sets[i],
		})
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}

	dir := m.settings.ReportDir
	if dir == "" {
		dir = album.Dir
	} else if err := ioutils.EnsureDir(dir); err != nil {
		return err
	}

	path := filepath.Join(dir, ioutils.SanitizeFileName(album.Name())+".workparts.json")
	return ioutils.WriteFile(ctx, path, data)
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
