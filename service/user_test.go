package service

import (
	"context"
	"strings"
	"testing"

	"github.com/PozdnyakovE/foodgram/model"
	"github.com/PozdnyakovE/foodgram/repository"
	"github.com/PozdnyakovE/foodgram/util"
)

func TestGetProfile(t *testing.T) {
	env := newTestEnv(t)
	viewer := env.createUser(t, "viewer")
	author := env.createUser(t, "author")

	ctx := context.Background()
	if _, err := env.relations.Subscribe(ctx, viewer.ID, author.ID, 0); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	view, err := env.users.GetProfile(ctx, viewer.ID, author.ID)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if view.Username != "author" || !view.IsSubscribed {
		t.Fatalf("view = %+v, want subscribed author", view)
	}

	view, err = env.users.GetProfile(ctx, 0, author.ID)
	if err != nil {
		t.Fatalf("get profile anonymously: %v", err)
	}
	if view.IsSubscribed {
		t.Fatal("anonymous viewer sees is_subscribed true")
	}

	_, err = env.users.GetProfile(ctx, viewer.ID, author.ID+100)
	if apiErr, ok := util.AsAPIError(err); !ok || apiErr.Status != 404 {
		t.Fatalf("unknown user: got %v, want 404", err)
	}
}

func TestListUsersSubscriptionFlags(t *testing.T) {
	env := newTestEnv(t)
	viewer := env.createUser(t, "viewer")
	followed := env.createUser(t, "followed")
	env.createUser(t, "plain")

	ctx := context.Background()
	if err := repository.NewRelationRepository(env.db).
		Add(ctx, repository.RelationSubscription, viewer.ID, followed.ID); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	views, count, err := env.users.ListUsers(ctx, viewer.ID, util.PageParams{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if count != 3 || len(views) != 3 {
		t.Fatalf("count=%d len=%d, want 3 and 3", count, len(views))
	}
	for _, view := range views {
		if view.IsSubscribed != (view.Username == "followed") {
			t.Fatalf("view %s: is_subscribed=%v", view.Username, view.IsSubscribed)
		}
	}
}

func TestUpdateAndDeleteAvatar(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "pictured")

	ctx := context.Background()
	url, err := env.users.UpdateAvatar(ctx, user.ID, pngDataURI())
	if err != nil {
		t.Fatalf("update avatar: %v", err)
	}
	if !strings.HasPrefix(url, "/media/user_images/") {
		t.Fatalf("avatar url = %q, want a /media/user_images/ path", url)
	}

	var stored model.User
	if err := env.db.First(&stored, user.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if stored.Avatar == "" {
		t.Fatal("avatar path not stored")
	}

	if err := env.users.DeleteAvatar(ctx, user.ID); err != nil {
		t.Fatalf("delete avatar: %v", err)
	}
	if err := env.db.First(&stored, user.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if stored.Avatar != "" {
		t.Fatalf("avatar = %q after delete, want empty", stored.Avatar)
	}
}

func TestUpdateAvatarRejectsBadPayload(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "pictured")

	_, err := env.users.UpdateAvatar(context.Background(), user.ID, "not a data uri")
	if apiErr, ok := util.AsAPIError(err); !ok || apiErr.Field != "image" {
		t.Fatalf("got %v, want an image validation error", err)
	}
}
