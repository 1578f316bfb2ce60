package interactions

import (
	"errors"
	"testing"

	"github.com/wayra-app/backend/internal/models"
)

func TestReactInvalidKind(t *testing.T) {
	post := &models.Post{ID: 1}
	actor := models.Actor{ID: 7, UserName: "ana"}

	for _, kind := range []string{"", "dislike", "LIKE", "meh"} {
		if err := React(post, actor, kind); !errors.Is(err, ErrInvalidReaction) {
			t.Fatalf("kind %q: expected ErrInvalidReaction, got %v", kind, err)
		}
	}
	if len(post.Reactions) != 0 {
		t.Fatalf("expected no reactions, got %d", len(post.Reactions))
	}
}

func TestReactThenSameKindConflicts(t *testing.T) {
	post := &models.Post{ID: 1}
	actor := models.Actor{ID: 7, UserName: "ana"}

	if err := React(post, actor, "love"); err != nil {
		t.Fatalf("first react: %v", err)
	}
	if err := React(post, actor, "love"); !errors.Is(err, ErrSameReaction) {
		t.Fatalf("expected ErrSameReaction, got %v", err)
	}

	if len(post.Reactions) != 1 {
		t.Fatalf("expected exactly one reaction, got %d", len(post.Reactions))
	}
	if post.Reactions[0].UserID != 7 || post.Reactions[0].Reaction != "love" {
		t.Fatalf("unexpected reaction entry: %+v", post.Reactions[0])
	}
}

func TestReactSwitchKindReplaces(t *testing.T) {
	comment := &models.Comment{CommentID: 1}
	actor := models.Actor{ID: 7, UserName: "ana"}

	if err := React(comment, actor, "haha"); err != nil {
		t.Fatalf("first react: %v", err)
	}
	if err := React(comment, actor, "wow"); err != nil {
		t.Fatalf("switch react: %v", err)
	}

	if len(comment.Reactions) != 1 {
		t.Fatalf("expected one reaction after switch, got %d", len(comment.Reactions))
	}
	if comment.Reactions[0].Reaction != "wow" {
		t.Fatalf("expected kind wow, got %s", comment.Reactions[0].Reaction)
	}
}

func TestReactKeepsOtherUsers(t *testing.T) {
	destination := &models.Destination{ID: 3}
	ana := models.Actor{ID: 7, UserName: "ana"}
	ben := models.Actor{ID: 8, UserName: "ben"}

	if err := React(destination, ana, "sad"); err != nil {
		t.Fatalf("react ana: %v", err)
	}
	if err := React(destination, ben, "angry"); err != nil {
		t.Fatalf("react ben: %v", err)
	}
	if err := React(destination, ana, "like"); err != nil {
		t.Fatalf("switch ana: %v", err)
	}

	if len(destination.Reactions) != 2 {
		t.Fatalf("expected two reactions, got %d", len(destination.Reactions))
	}
	for _, r := range destination.Reactions {
		if r.UserID == 8 && r.Reaction != "angry" {
			t.Fatalf("ben's reaction changed: %+v", r)
		}
	}
}

func TestUnreactIsIdempotent(t *testing.T) {
	post := &models.Post{ID: 1}
	actor := models.Actor{ID: 7, UserName: "ana"}

	if err := React(post, actor, "like"); err != nil {
		t.Fatalf("react: %v", err)
	}

	Unreact(post, actor.ID)
	if len(post.Reactions) != 0 {
		t.Fatalf("expected no reactions after unreact, got %d", len(post.Reactions))
	}

	// Second removal of an absent reaction is a no-op
	Unreact(post, actor.ID)
	if len(post.Reactions) != 0 {
		t.Fatalf("expected no reactions after second unreact, got %d", len(post.Reactions))
	}
}
