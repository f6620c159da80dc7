package sender

import (
	"context"
	"testing"
	"time"

	"lora-telemetry/pkg/wire"
)

func TestSender_SequenceStrictlyIncreasing(t *testing.T) {
	s := New(Options{})

	for want := uint64(0); want < 5; want++ {
		msg := s.Next()
		if msg.Seq != want {
			t.Errorf("expected seq %d, got %d", want, msg.Seq)
		}
	}
}

func TestSender_DistanceChangeReseeds(t *testing.T) {
	s := New(Options{})
	s.SetDistance(10)

	s.Next()
	s.Next()
	s.Next()

	s.SetDistance(25)
	msg := s.Next()

	if msg.Seq != 0 {
		t.Errorf("expected seq re-seeded to 0, got %d", msg.Seq)
	}
	if msg.Distance != 25 {
		t.Errorf("expected distance 25, got %f", msg.Distance)
	}
	if msg.Total != 4 {
		t.Errorf("expected running total to keep counting, got %d", msg.Total)
	}
}

func TestSender_TokensChangePerSession(t *testing.T) {
	s := New(Options{EmitTokens: true})
	s.SetDistance(10)

	first := s.Next()
	second := s.Next()
	if first.Session == "" || first.Session != second.Session {
		t.Errorf("expected a stable token within a session, got %q then %q",
			first.Session, second.Session)
	}

	s.SetDistance(25)
	third := s.Next()
	if third.Session == second.Session {
		t.Errorf("expected a fresh token after re-seed, got %q again", third.Session)
	}
}

func TestSender_NoTokensByDefault(t *testing.T) {
	s := New(Options{})
	if msg := s.Next(); msg.Session != "" {
		t.Errorf("expected no session token, got %q", msg.Session)
	}
}

func TestSender_Timestamps(t *testing.T) {
	current := time.Unix(1000, 0)
	s := New(Options{Now: func() time.Time { return current }})

	current = current.Add(1500 * time.Millisecond)
	msg := s.Next()

	if msg.Timestamp != 1500 {
		t.Errorf("expected timestamp 1500ms, got %d", msg.Timestamp)
	}
}

func TestSender_RunEmitsOnInterval(t *testing.T) {
	s := New(Options{})
	s.SetDistance(10)

	ctx, cancel := context.WithCancel(context.Background())
	sent := make(chan wire.Message, 16)

	go s.Run(ctx, 5*time.Millisecond, func(m wire.Message) error {
		sent <- m
		return nil
	}, nil)

	var got []wire.Message
	for len(got) < 3 {
		select {
		case m := <-sent:
			got = append(got, m)
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for packets, got %d", len(got))
		}
	}
	cancel()

	for i := 1; i < len(got); i++ {
		if got[i].Seq != got[i-1].Seq+1 {
			t.Errorf("expected consecutive sequences, got %d then %d", got[i-1].Seq, got[i].Seq)
		}
	}
}
