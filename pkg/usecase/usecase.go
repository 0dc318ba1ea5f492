package usecase

import (
	"github.com/orgwatch/dirsync/pkg/domain/interfaces"
	"github.com/orgwatch/dirsync/pkg/service/directory"
	"github.com/orgwatch/dirsync/pkg/sync"
)

type UseCases struct {
	repo        interfaces.Repository
	dir         directory.Service
	actor       string
	concurrency int

	teamPolicy    *sync.TeamReconciler
	channelPolicy *sync.ChannelReconciler
	userPolicy    *sync.UserReconciler
}

type Option func(*UseCases)

// WithActor sets the audit actor recorded on synchronized entities
func WithActor(actor string) Option {
	return func(uc *UseCases) {
		if actor != "" {
			uc.actor = actor
		}
	}
}

// WithConcurrency bounds the number of teams whose channels are synced in parallel
func WithConcurrency(n int) Option {
	return func(uc *UseCases) {
		if n > 0 {
			uc.concurrency = n
		}
	}
}

// WithGeneralAliases overrides the channel names treated as a team's general channel
func WithGeneralAliases(aliases ...string) Option {
	return func(uc *UseCases) {
		uc.channelPolicy = sync.NewChannelReconciler(sync.WithGeneralAliases(aliases...))
	}
}

func New(repo interfaces.Repository, dir directory.Service, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:          repo,
		dir:           dir,
		actor:         sync.DefaultActor,
		concurrency:   4,
		teamPolicy:    sync.NewTeamReconciler(),
		channelPolicy: sync.NewChannelReconciler(),
		userPolicy:    sync.NewUserReconciler(),
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}
