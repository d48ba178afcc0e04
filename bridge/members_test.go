package bridge

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"threadlink/contract"
	"threadlink/domain"
	"threadlink/mocks"
	"threadlink/observability"
)

func TestJoin_PromptTimeout_LeavesRoomUntouched(t *testing.T) {
	req := require.New(t)
	room, tr := setupRoom(t, domain.OneOnOne)
	threadA := bridgeChannel(t, room, tr, &domain.User{ID: "u1", Name: "dave"}, false)
	threadB := bridgeChannel(t, room, tr, &domain.User{ID: "u2", Name: "erin"}, false)
	relayedBefore := len(tr.Sent(threadB.ID))

	// When an outsider posts into a full instance and never answers
	carol := &domain.User{ID: "u3", Name: "carol"}
	tr.Deliver(t.Context(), inbound(threadA.ID, carol, "can I get in?"))

	// Then a prompt was raised and expired without admitting anyone
	prompts := tr.Prompts()
	req.Len(prompts, 1)
	req.True(prompts[0].Result.TimedOut)
	req.Equal(carol.ID, prompts[0].ResponderID)
	req.NotContains(room.Snapshot().Members, "carol")

	// And the triggering message was never relayed
	req.Len(tr.Sent(threadB.ID), relayedBefore)

	req.Equal(uint64(1), room.deps.Metrics.JoinsPrompted.Load())
	req.Equal(uint64(1), room.deps.Metrics.JoinTimeouts.Load())
	req.Zero(room.deps.Metrics.JoinsAccepted.Load())
}

func TestJoin_AcceptedButStillFull_NotifiesFailure(t *testing.T) {
	req := require.New(t)
	room, tr := setupRoom(t, domain.OneOnOne)
	threadA := bridgeChannel(t, room, tr, &domain.User{ID: "u1", Name: "dave"}, false)
	bridgeChannel(t, room, tr, &domain.User{ID: "u2", Name: "erin"}, false)

	carol := &domain.User{ID: "u3", Name: "carol"}
	tr.ScriptChoice(carol.ID, contract.ChoiceResult{Choice: choiceJoin})

	// When carol accepts but the slot never freed up
	tr.Deliver(t.Context(), inbound(threadA.ID, carol, "room for one more?"))

	req.NotContains(room.Snapshot().Members, "carol")
	notices := tr.Notices()
	req.Len(notices, 1)
	req.Equal(carol.ID, notices[0].ResponderID)
	req.Contains(notices[0].Text, "filled up")
	req.Zero(room.deps.Metrics.JoinsAccepted.Load())
}

// mockThreadLifecycle wires the calls every CreateThread makes so tests
// can focus their expectations on the join flow itself.
func mockThreadLifecycle(ctrl *gomock.Controller, tr *mocks.MockTransport, count int) {
	tr.EXPECT().
		EnsureRelayEndpoint(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, channel contract.ChannelRef) (contract.EndpointRef, error) {
			return contract.EndpointRef{ID: "ep-" + channel.ID, ChannelID: channel.ID}, nil
		}).
		Times(count)
	tr.EXPECT().
		StartThread(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, anchor contract.ChannelRef, name string) (contract.ThreadRef, error) {
			return contract.ThreadRef{ID: "thread-" + anchor.ID, ParentID: anchor.ID, Name: name}, nil
		}).
		Times(count)
	sub := mocks.NewMockSubscription(ctrl)
	sub.EXPECT().Cancel().AnyTimes()
	tr.EXPECT().
		SubscribeMessages(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(sub, nil).
		Times(count)
	tr.EXPECT().SendViaRelay(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	tr.EXPECT().UpdateStarter(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func TestJoin_AdmittedWhenSlotFreesDuringPrompt(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	tr := mocks.NewMockTransport(ctrl)
	registry := NewRoomRegistry(Deps{
		Transport: tr,
		Log:       testLogger(),
		Metrics:   observability.NewMetrics(),
	})
	room, err := registry.Create(domain.OneOnOne)
	req.NoError(err)

	mockThreadLifecycle(ctrl, tr, 2)
	ok, err := room.CreateThread(t.Context(), contract.ChannelRef{ID: "chanA", Kind: contract.KindText}, &domain.User{ID: "u1", Name: "dave"}, false)
	req.NoError(err)
	req.True(ok)
	ok, err = room.CreateThread(t.Context(), contract.ChannelRef{ID: "chanB", Kind: contract.KindText}, &domain.User{ID: "u2", Name: "erin"}, false)
	req.NoError(err)
	req.True(ok)

	carol := &domain.User{ID: "u3", Name: "carol"}

	// Given dave leaves while carol's prompt is open
	tr.EXPECT().
		PromptChoice(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), carol.ID, JoinPromptTimeout).
		DoAndReturn(func(ctx context.Context, _ *domain.Message, _ string, _ []contract.Choice, _ string, _ time.Duration) (contract.ChoiceResult, error) {
			require.True(t, room.Leave(ctx, "u1"))
			return contract.ChoiceResult{Choice: choiceJoinAnon}, nil
		})
	tr.EXPECT().
		Notify(gomock.Any(), "thread-chanA", carol.ID, gomock.Any()).
		Do(func(_ context.Context, _, _, text string) {
			require.Contains(t, text, "You joined as Anonymous 1")
		})

	room.handleMessage(t.Context(), &domain.Message{
		ID:        uuid.New(),
		ChannelID: "thread-chanA",
		Author:    carol,
		Content:   "anyone home?",
		CreatedAt: time.Now(),
	})

	req.Contains(room.Snapshot().Members, "Anonymous 1")
	req.NotContains(room.Snapshot().Members, "dave")
	req.Equal(uint64(1), room.deps.Metrics.JoinsAccepted.Load())
}

func TestJoin_PendingPromptIsNeverDuplicated(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	tr := mocks.NewMockTransport(ctrl)
	registry := NewRoomRegistry(Deps{
		Transport: tr,
		Log:       testLogger(),
		Metrics:   observability.NewMetrics(),
	})
	room, err := registry.Create(domain.OneOnOne)
	req.NoError(err)

	mockThreadLifecycle(ctrl, tr, 1)
	ok, err := room.CreateThread(t.Context(), contract.ChannelRef{ID: "chanA", Kind: contract.KindText}, &domain.User{ID: "u1", Name: "dave"}, false)
	req.NoError(err)
	req.True(ok)

	carol := &domain.User{ID: "u3", Name: "carol"}
	post := func(ctx context.Context, content string) {
		room.handleMessage(ctx, &domain.Message{
			ID:        uuid.New(),
			ChannelID: "thread-chanA",
			Author:    carol,
			Content:   content,
			CreatedAt: time.Now(),
		})
	}

	// Given carol fires a second message while her prompt is open
	tr.EXPECT().
		PromptChoice(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), carol.ID, JoinPromptTimeout).
		DoAndReturn(func(ctx context.Context, _ *domain.Message, _ string, _ []contract.Choice, _ string, _ time.Duration) (contract.ChoiceResult, error) {
			post(ctx, "hello again")
			return contract.ChoiceResult{TimedOut: true}, nil
		}).
		Times(1)

	post(t.Context(), "hello?")

	req.Equal(uint64(1), room.deps.Metrics.JoinsPrompted.Load())
	req.Equal(uint64(1), room.deps.Metrics.JoinTimeouts.Load())
	req.NotContains(room.Snapshot().Members, "carol")
}
