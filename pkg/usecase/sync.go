package usecase

import (
	"context"
	"errors"
	gosync "sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/orgwatch/dirsync/pkg/domain/interfaces"
	"github.com/orgwatch/dirsync/pkg/domain/model"
	"github.com/orgwatch/dirsync/pkg/domain/types"
	"github.com/orgwatch/dirsync/pkg/sync"
	"github.com/orgwatch/dirsync/pkg/utils/errutil"
	"github.com/orgwatch/dirsync/pkg/utils/logging"
	"golang.org/x/sync/errgroup"
)

type outcome int

const (
	outcomeUnchanged outcome = iota
	outcomeCreated
	outcomeUpdated
)

// Tally counts sync outcomes for one entity kind
type Tally struct {
	Created   int
	Updated   int
	Unchanged int
	Failed    int
}

func (t *Tally) add(o outcome) {
	switch o {
	case outcomeCreated:
		t.Created++
	case outcomeUpdated:
		t.Updated++
	case outcomeUnchanged:
		t.Unchanged++
	}
}

// Synced is the number of entities present after the run
func (t Tally) Synced() int {
	return t.Created + t.Updated + t.Unchanged
}

// SyncReport summarizes one full reconciliation run
type SyncReport struct {
	StartedAt  time.Time
	FinishedAt time.Time
	Teams      Tally
	Channels   Tally
	Users      Tally
}

// SyncTeam reconciles one external team record into the local store
func (uc *UseCases) SyncTeam(ctx context.Context, rec *model.Record) (*model.Team, error) {
	team, _, err := uc.applyTeam(ctx, rec)
	return team, err
}

func (uc *UseCases) applyTeam(ctx context.Context, rec *model.Record) (*model.Team, outcome, error) {
	externalID, err := sync.ExtractExternalID(rec)
	if err != nil {
		return nil, outcomeUnchanged, err
	}

	existing, err := uc.repo.Team().GetByExternalID(ctx, externalID)
	if err != nil && !errors.Is(err, interfaces.ErrNotFound) {
		return nil, outcomeUnchanged, goerr.Wrap(err, "failed to look up team", goerr.V(ExternalIDKey, externalID))
	}

	if existing != nil && !sync.RequiresSynchronization(ctx, uc.teamPolicy, rec, existing) {
		return existing, outcomeUnchanged, nil
	}

	team, err := sync.Synchronize(ctx, uc.teamPolicy, rec, existing, uc.actor)
	if err != nil {
		return nil, outcomeUnchanged, err
	}

	if err := uc.repo.Team().Put(ctx, team); err != nil {
		return nil, outcomeUnchanged, goerr.Wrap(err, "failed to store team", goerr.V(ExternalIDKey, externalID))
	}

	if existing == nil {
		return team, outcomeCreated, nil
	}
	return team, outcomeUpdated, nil
}

// SyncChannel reconciles one external channel record into the local store,
// scoped to the team it belongs to. Channels carry no stable external
// identifier, so the existing entity is matched by display name within the
// team.
func (uc *UseCases) SyncChannel(ctx context.Context, teamID types.TeamID, rec *model.Record) (*model.Channel, error) {
	ch, _, err := uc.applyChannel(ctx, teamID, rec)
	return ch, err
}

func (uc *UseCases) applyChannel(ctx context.Context, teamID types.TeamID, rec *model.Record) (*model.Channel, outcome, error) {
	var existing *model.Channel
	if name := sync.ExtractString(ctx, rec, "DisplayName", ""); name != "" {
		found, err := uc.repo.Channel().FindByDisplayName(ctx, teamID, name)
		if err != nil && !errors.Is(err, interfaces.ErrNotFound) {
			return nil, outcomeUnchanged, goerr.Wrap(err, "failed to look up channel",
				goerr.V(TeamIDKey, teamID), goerr.V(DisplayNameKey, name))
		}
		existing = found
	}

	if existing != nil && !sync.RequiresSynchronization(ctx, uc.channelPolicy, rec, existing) {
		return existing, outcomeUnchanged, nil
	}

	ch, err := sync.Synchronize(ctx, uc.channelPolicy, rec, existing, uc.actor)
	if err != nil {
		return nil, outcomeUnchanged, err
	}
	ch.TeamID = teamID

	if err := uc.repo.Channel().Put(ctx, ch); err != nil {
		return nil, outcomeUnchanged, goerr.Wrap(err, "failed to store channel", goerr.V(TeamIDKey, teamID))
	}

	if existing == nil {
		return ch, outcomeCreated, nil
	}
	return ch, outcomeUpdated, nil
}

// SyncTeamChannels re-syncs a single team and its channels from the
// directory, addressed by the team's external identifier
func (uc *UseCases) SyncTeamChannels(ctx context.Context, teamExternalID string) (*SyncReport, error) {
	report := &SyncReport{StartedAt: time.Now()}
	defer func() { report.FinishedAt = time.Now() }()

	rec, err := uc.dir.GetTeam(ctx, teamExternalID)
	if err != nil {
		return report, goerr.Wrap(ErrTeamNotFound, "directory has no such team",
			goerr.V(ExternalIDKey, teamExternalID), goerr.V("cause", err.Error()))
	}

	team, o, err := uc.applyTeam(ctx, rec)
	if err != nil {
		return report, err
	}
	report.Teams.add(o)

	for rec, err := range uc.dir.ListChannels(ctx, teamExternalID) {
		if err != nil {
			return report, goerr.Wrap(err, "failed to list channels from directory",
				goerr.V(ExternalIDKey, teamExternalID))
		}

		_, o, err := uc.applyChannel(ctx, team.ID, rec)
		if err != nil {
			report.Channels.Failed++
			_ = errutil.Handle(ctx, err, "failed to sync channel")
			continue
		}
		report.Channels.add(o)
	}

	return report, nil
}

// SyncUser reconciles one external user record into the local store
func (uc *UseCases) SyncUser(ctx context.Context, rec *model.Record) (*model.User, error) {
	user, _, err := uc.applyUser(ctx, rec)
	return user, err
}

// SyncUserByID fetches one user from the directory by its external
// identifier and reconciles it into the local store
func (uc *UseCases) SyncUserByID(ctx context.Context, externalID string) (*model.User, error) {
	rec, err := uc.dir.GetUser(ctx, externalID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch user from directory", goerr.V(ExternalIDKey, externalID))
	}
	return uc.SyncUser(ctx, rec)
}

func (uc *UseCases) applyUser(ctx context.Context, rec *model.Record) (*model.User, outcome, error) {
	externalID, err := sync.ExtractExternalID(rec)
	if err != nil {
		return nil, outcomeUnchanged, err
	}

	existing, err := uc.repo.User().GetByExternalID(ctx, externalID)
	if err != nil && !errors.Is(err, interfaces.ErrNotFound) {
		return nil, outcomeUnchanged, goerr.Wrap(err, "failed to look up user", goerr.V(ExternalIDKey, externalID))
	}

	if existing != nil && !sync.RequiresSynchronization(ctx, uc.userPolicy, rec, existing) {
		return existing, outcomeUnchanged, nil
	}

	user, err := sync.Synchronize(ctx, uc.userPolicy, rec, existing, uc.actor)
	if err != nil {
		return nil, outcomeUnchanged, err
	}

	if err := uc.repo.User().Put(ctx, user); err != nil {
		return nil, outcomeUnchanged, goerr.Wrap(err, "failed to store user", goerr.V(ExternalIDKey, externalID))
	}

	if existing == nil {
		return user, outcomeCreated, nil
	}
	return user, outcomeUpdated, nil
}

// SyncAll runs a full reconciliation: all teams, each team's channels, and
// all users. A single entity failing to sync is logged and counted but does
// not abort the run; a failure to enumerate the directory does.
func (uc *UseCases) SyncAll(ctx context.Context) (*SyncReport, error) {
	logger := logging.From(ctx)
	report := &SyncReport{StartedAt: time.Now()}

	meta, err := uc.repo.GetSyncMetadata(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load sync metadata")
	}
	meta.LastSyncAttempt = report.StartedAt

	runErr := uc.syncAll(ctx, report)

	report.FinishedAt = time.Now()

	if runErr == nil {
		meta.LastSyncSuccess = report.FinishedAt
		meta.TeamCount = report.Teams.Synced()
		meta.ChannelCount = report.Channels.Synced()
		meta.UserCount = report.Users.Synced()
	}
	if err := uc.repo.SaveSyncMetadata(ctx, meta); err != nil {
		logger.Warn("failed to save sync metadata", "error", err.Error())
	}

	if runErr != nil {
		return report, runErr
	}

	logger.Info("full sync completed",
		"duration", report.FinishedAt.Sub(report.StartedAt).String(),
		"teams", report.Teams.Synced(),
		"channels", report.Channels.Synced(),
		"users", report.Users.Synced(),
		"failed", report.Teams.Failed+report.Channels.Failed+report.Users.Failed)

	return report, nil
}

func (uc *UseCases) syncAll(ctx context.Context, report *SyncReport) error {
	// Teams first: channel sync needs the local team IDs
	type syncedTeam struct {
		id         types.TeamID
		externalID string
	}
	var teams []syncedTeam

	for rec, err := range uc.dir.ListTeams(ctx) {
		if err != nil {
			return goerr.Wrap(err, "failed to list teams from directory")
		}

		team, o, err := uc.applyTeam(ctx, rec)
		if err != nil {
			report.Teams.Failed++
			_ = errutil.Handle(ctx, err, "failed to sync team")
			continue
		}
		report.Teams.add(o)
		teams = append(teams, syncedTeam{id: team.ID, externalID: team.ExternalID})
	}

	// Channels per team, bounded fan-out
	var mu gosync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.concurrency)

	for _, team := range teams {
		g.Go(func() error {
			for rec, err := range uc.dir.ListChannels(gctx, team.externalID) {
				if err != nil {
					return goerr.Wrap(err, "failed to list channels from directory",
						goerr.V(ExternalIDKey, team.externalID))
				}

				_, o, err := uc.applyChannel(gctx, team.id, rec)
				mu.Lock()
				if err != nil {
					report.Channels.Failed++
				} else {
					report.Channels.add(o)
				}
				mu.Unlock()
				if err != nil {
					_ = errutil.Handle(gctx, err, "failed to sync channel")
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for rec, err := range uc.dir.ListUsers(ctx) {
		if err != nil {
			return goerr.Wrap(err, "failed to list users from directory")
		}

		_, o, err := uc.applyUser(ctx, rec)
		if err != nil {
			report.Users.Failed++
			_ = errutil.Handle(ctx, err, "failed to sync user")
			continue
		}
		report.Users.add(o)
	}

	return nil
}
