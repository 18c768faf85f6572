// internal/app/system/membership/membership.go

// Package membership owns every mutation that touches both sides of a
// relationship between users, groups, and events. Handlers never write
// cross-references directly: they call the paired operations here, and
// this service keeps the bidirectional invariants intact.
//
// Ordering rule, used throughout: the dependent side's write happens
// first, the owner/collection side's write second. There is no
// multi-document transaction and no rollback; when the second write
// fails the caller gets an apierr.PartialFailure naming which side
// succeeded, never a silent success or a masked failure.
package membership

import (
	"context"
	"errors"
	"fmt"
	"time"

	eventstore "github.com/dalemusser/congregate/internal/app/store/events"
	groupstore "github.com/dalemusser/congregate/internal/app/store/groups"
	userstore "github.com/dalemusser/congregate/internal/app/store/users"
	"github.com/dalemusser/congregate/internal/app/system/apierr"
	"github.com/dalemusser/congregate/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ErrSongAlreadyPresent signals a duplicate attach. The songs route
// reports it as 200 "already present" rather than a conflict response;
// the song list is left with exactly one occurrence either way.
var ErrSongAlreadyPresent = errors.New("song already attached to event")

type Service struct {
	users  *userstore.Store
	groups *groupstore.Store
	events *eventstore.Store
	log    *zap.Logger
}

func NewService(db *mongo.Database, logger *zap.Logger) *Service {
	return &Service{
		users:  userstore.New(db),
		groups: groupstore.New(db),
		events: eventstore.New(db),
		log:    logger,
	}
}

// CreateGroup verifies the creator exists, generates a unique join
// code, inserts the group with the creator as admin, and links the
// group into the creator's membership set.
func (s *Service) CreateGroup(ctx context.Context, name string, creatorID primitive.ObjectID) (models.Group, error) {
	if _, err := s.users.GetByID(ctx, creatorID); err != nil {
		return models.Group{}, apierr.FromStore(err, "could not find user by that id (creatorId)")
	}

	g, err := s.insertWithFreshCode(ctx, models.Group{
		Name:    name,
		Admins:  []primitive.ObjectID{creatorID},
		Members: []models.Member{{Role: "admin", UserID: creatorID}},
	})
	if err != nil {
		return models.Group{}, err
	}

	if err := s.users.PushGroup(ctx, creatorID, g.ID); err != nil {
		return g, &apierr.PartialFailure{
			Message:   "group created but creator membership was not recorded",
			Succeeded: "group",
			Failed:    "user.groups",
			Err:       err,
		}
	}
	return g, nil
}

// codeAlphabet omits characters that read ambiguously when spoken or
// written down (I, L, O, 0, 1).
const (
	codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"
	codeLength   = 4
	maxCodeTries = 20
)

// insertWithFreshCode inserts the group under a newly generated code,
// regenerating on a duplicate-key collision. The unique index on
// groups.code is the arbiter, so two concurrent creations cannot both
// win the same code. Exhausting the attempts means the code space is
// effectively full, which is an operational fault, not a user error.
func (s *Service) insertWithFreshCode(ctx context.Context, g models.Group) (models.Group, error) {
	for i := 0; i < maxCodeTries; i++ {
		code, err := GenerateCode()
		if err != nil {
			return models.Group{}, apierr.Wrap(apierr.Dependency, "could not generate join code", err)
		}
		g.Code = code

		created, err := s.groups.Create(ctx, g)
		if err == nil {
			return created, nil
		}
		if errors.Is(err, groupstore.ErrDuplicateCode) {
			s.log.Warn("join code collision, regenerating", zap.String("code", code))
			continue
		}
		return models.Group{}, apierr.Wrap(apierr.Dependency, "could not create new group", err)
	}
	return models.Group{}, apierr.New(apierr.Dependency,
		fmt.Sprintf("could not find a free join code in %d attempts", maxCodeTries))
}

// JoinGroup resolves the join code, rejects a duplicate membership, and
// records the membership on both sides.
func (s *Service) JoinGroup(ctx context.Context, code string, userID primitive.ObjectID) (*models.Group, error) {
	g, err := s.groups.GetByCode(ctx, code)
	if err != nil {
		return nil, apierr.FromStore(err, "could not find group with that code")
	}
	if g.HasMember(userID) {
		return nil, apierr.New(apierr.Conflict, "user is already a member of this group")
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, apierr.FromStore(err, "could not find user by that id")
	}

	if err := s.groups.PushMember(ctx, g.ID, models.Member{Role: "member", UserID: userID}); err != nil {
		return nil, apierr.Wrap(apierr.Dependency, "could not add member to group", err)
	}
	if err := s.users.PushGroup(ctx, userID, g.ID); err != nil {
		return g, &apierr.PartialFailure{
			Message:   "joined group but user membership list was not updated",
			Succeeded: "group.members",
			Failed:    "user.groups",
			Err:       err,
		}
	}

	g.Members = append(g.Members, models.Member{Role: "member", UserID: userID})
	return g, nil
}

// LeaveGroup tears down one membership on both sides.
func (s *Service) LeaveGroup(ctx context.Context, groupID, userID primitive.ObjectID) error {
	g, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		return apierr.FromStore(err, "could not find group by that id")
	}
	if !g.HasMember(userID) {
		return apierr.New(apierr.NotFound, "user is not a member of this group")
	}

	if err := s.groups.PullMember(ctx, groupID, userID); err != nil {
		return apierr.Wrap(apierr.Dependency, "could not remove member from group", err)
	}
	if err := s.users.PullGroup(ctx, userID, groupID); err != nil {
		return &apierr.PartialFailure{
			Message:   "left group but user membership list was not updated",
			Succeeded: "group.members",
			Failed:    "user.groups",
			Err:       err,
		}
	}
	return nil
}

// DeleteGroup removes the group id from every member's membership set
// (best effort: a missing user is logged and skipped) and then deletes
// the group document. Owned events are not cascade-deleted; they are
// orphaned and logged so an operator can reconcile.
func (s *Service) DeleteGroup(ctx context.Context, groupID primitive.ObjectID) (*models.Group, error) {
	g, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		return nil, apierr.FromStore(err, "could not find group by that id")
	}

	for _, m := range g.Members {
		if err := s.users.PullGroup(ctx, m.UserID, groupID); err != nil {
			s.log.Warn("membership cleanup skipped a user",
				zap.String("group_id", groupID.Hex()),
				zap.String("user_id", m.UserID.Hex()),
				zap.Error(err))
		}
	}

	n, err := s.groups.Delete(ctx, groupID)
	if err != nil {
		return nil, apierr.Wrap(apierr.Dependency, "could not delete group", err)
	}
	if n == 0 {
		return nil, apierr.New(apierr.NotFound, "could not find group by that id")
	}

	if len(g.Events) > 0 {
		ids := make([]string, len(g.Events))
		for i, id := range g.Events {
			ids[i] = id.Hex()
		}
		s.log.Warn("group deleted with owned events left orphaned",
			zap.String("group_id", groupID.Hex()),
			zap.Strings("event_ids", ids))
	}
	return g, nil
}

// RemoveUser pulls the user out of every group's member and admin lists
// (best effort) and then deletes the user document.
func (s *Service) RemoveUser(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, apierr.FromStore(err, "could not find user by that id")
	}

	if n, err := s.groups.PullMemberFromAll(ctx, userID); err != nil {
		s.log.Warn("group cleanup incomplete while deleting user",
			zap.String("user_id", userID.Hex()),
			zap.Error(err))
	} else if n > 0 {
		s.log.Info("removed user from groups",
			zap.String("user_id", userID.Hex()),
			zap.Int64("groups", n))
	}

	if _, err := s.users.Delete(ctx, userID); err != nil {
		return nil, apierr.Wrap(apierr.Dependency, "could not delete user", err)
	}
	return u, nil
}

// CreateEvent verifies the owning group, inserts the event, and links
// it into the group's events list. Returns the created event and the
// updated group.
func (s *Service) CreateEvent(ctx context.Context, groupID primitive.ObjectID, name string, date time.Time) (models.Event, *models.Group, error) {
	g, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		return models.Event{}, nil, apierr.FromStore(err, "could not find group by that id")
	}

	e, err := s.events.Create(ctx, models.Event{
		Name:            name,
		Date:            date.UTC(),
		AssociatedGroup: groupID,
	})
	if err != nil {
		return models.Event{}, nil, apierr.Wrap(apierr.Dependency, "could not create event", err)
	}

	if err := s.groups.PushEvent(ctx, groupID, e.ID); err != nil {
		return e, g, &apierr.PartialFailure{
			Message:   "event created but group events list was not updated",
			Succeeded: "event",
			Failed:    "group.events",
			Err:       err,
		}
	}

	g.Events = append(g.Events, e.ID)
	return e, g, nil
}

// DeleteEvent deletes the event and then removes its id from the owning
// group. The event deletion is the primary write; a missing or
// unreachable group is reported as a partial failure but does not undo
// the delete.
func (s *Service) DeleteEvent(ctx context.Context, eventID primitive.ObjectID) (*models.Event, error) {
	e, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, apierr.FromStore(err, "could not find event by that id")
	}

	if _, err := s.events.Delete(ctx, eventID); err != nil {
		return nil, apierr.Wrap(apierr.Dependency, "could not remove event", err)
	}

	if err := s.groups.PullEvent(ctx, e.AssociatedGroup, eventID); err != nil {
		return e, &apierr.PartialFailure{
			Message:   "event removed but the owning group's events list was not updated",
			Succeeded: "event",
			Failed:    "group.events",
			Err:       err,
		}
	}
	return e, nil
}

// AddSongToEvent attaches a song once. A second attach of the same song
// returns ErrSongAlreadyPresent and leaves the list unchanged.
func (s *Service) AddSongToEvent(ctx context.Context, eventID, songID primitive.ObjectID) error {
	e, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return apierr.FromStore(err, "could not find event by that id")
	}
	if e.HasSong(songID) {
		return ErrSongAlreadyPresent
	}
	if err := s.events.PushSong(ctx, eventID, songID); err != nil {
		return apierr.Wrap(apierr.Dependency, "could not add song to event", err)
	}
	return nil
}

// RemoveSongFromEvent detaches a song; removing an absent song is a
// success no-op.
func (s *Service) RemoveSongFromEvent(ctx context.Context, eventID, songID primitive.ObjectID) error {
	if err := s.events.PullSong(ctx, eventID, songID); err != nil {
		return apierr.FromStore(err, "could not find event by that id")
	}
	return nil
}
