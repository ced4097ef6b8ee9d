package forms

import (
	"context"
	"strings"
	"time"

	"github.com/zamanihq/dashboard/internal/dashboard/resource"
	"github.com/zamanihq/dashboard/pkg/slogx"
	"github.com/zamanihq/dashboard/pkg/zamanisdk"
	"golang.org/x/sync/errgroup"
)

const (
	MsgCommunityIDTaken  = "Community ID already taken"
	MsgUsernameTaken     = "Username already taken"
	MsgFixFields         = "Please fix the highlighted fields"
	MsgCommunityCreated  = "Community created successfully"
	MsgCreateFailed      = "Failed to create community"
	MsgAvailabilityCheck = "Unable to verify availability. Please try again."
)

// CommunityForm is the create-community form. Field changes trigger
// debounced availability checks; Submit re-checks both values before the
// multipart create is sent.
type CommunityForm struct {
	hooks  *resource.Hooks
	notify Notifier

	communityID *availabilityField
	username    *availabilityField
}

// NewCommunityForm returns a form whose availability checks fire delay after
// the last change (debounce.DefaultDelay when delay <= 0).
func NewCommunityForm(hooks *resource.Hooks, notify Notifier, delay time.Duration) *CommunityForm {
	f := &CommunityForm{hooks: hooks, notify: notify}
	f.communityID = newAvailabilityField("communityId", delay, func(ctx context.Context, v string) (*zamanisdk.Availability, error) {
		return hooks.Communities().CheckCommunityID(v).Fetch(ctx)
	})
	f.username = newAvailabilityField("adminUsername", delay, func(ctx context.Context, v string) (*zamanisdk.Availability, error) {
		return hooks.Auth().CheckUsername(v).Fetch(ctx)
	})
	return f
}

// ChangeCommunityID records an edit of the community ID field.
func (f *CommunityForm) ChangeCommunityID(ctx context.Context, value string) {
	f.communityID.change(ctx, strings.TrimSpace(value))
}

// ChangeUsername records an edit of the admin username field.
func (f *CommunityForm) ChangeUsername(ctx context.Context, value string) {
	f.username.change(ctx, strings.TrimSpace(value))
}

func (f *CommunityForm) CommunityIDStatus() Availability { return f.communityID.current() }
func (f *CommunityForm) UsernameStatus() Availability    { return f.username.current() }

// Submit validates req, confirms that the community ID and admin username are
// free and creates the community. It returns zamanisdk.ValidationErrors when
// the form is rejected locally; in that case nothing is sent to create.
func (f *CommunityForm) Submit(ctx context.Context, req zamanisdk.CreateCommunityRequest) (*zamanisdk.Community, error) {
	log := slogx.FromContext(ctx)

	if errs := req.Validate(); errs != nil {
		f.notify.Notify(ctx, LevelError, MsgFixFields)
		return nil, errs
	}

	var idStatus, userStatus Availability
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		idStatus, err = f.communityID.resolve(gctx, strings.TrimSpace(req.CommunityID))
		return err
	})
	g.Go(func() error {
		var err error
		userStatus, err = f.username.resolve(gctx, strings.TrimSpace(req.AdminUsername))
		return err
	})
	if err := g.Wait(); err != nil {
		log.Warn("availability check failed", "err", err)
		f.notify.Notify(ctx, LevelError, zamanisdk.UserMessage(err, MsgAvailabilityCheck))
		return nil, err
	}

	taken := zamanisdk.ValidationErrors{}
	if idStatus == Taken {
		taken["communityId"] = MsgCommunityIDTaken
		f.notify.Notify(ctx, LevelError, MsgCommunityIDTaken)
	}
	if userStatus == Taken {
		taken["adminUsername"] = MsgUsernameTaken
		f.notify.Notify(ctx, LevelError, MsgUsernameTaken)
	}
	if len(taken) > 0 {
		return nil, taken
	}

	community, err := f.hooks.Communities().Create().Mutate(ctx, req)
	if err != nil {
		log.Warn("create community failed", "community_id", req.CommunityID, "err", err)
		f.notify.Notify(ctx, LevelError, zamanisdk.UserMessage(err, MsgCreateFailed))
		return nil, err
	}

	log.Info("community created", "id", community.ID, "community_id", community.CommunityID)
	f.notify.Notify(ctx, LevelSuccess, MsgCommunityCreated)
	return community, nil
}
