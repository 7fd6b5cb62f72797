package mint

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"gebo/chains"
	"gebo/listings"
	"gebo/types"
)

const (
	owner  = "0xF39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
	txHash = "0x8a3f1c44b0e2f0b0c5a4c66f1d2a5b9e7c3d4e5f60718293a4b5c6d7e8f90a1b"
)

type recordingPublisher struct {
	keys   []string
	events []MintEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, key string, value any) error {
	if p.err != nil {
		return p.err
	}
	p.keys = append(p.keys, key)
	p.events = append(p.events, value.(MintEvent))
	return nil
}

func newTestService(pub Publisher) (*Service, *listings.MemoryStore, *MemoryRegistry) {
	store := listings.NewMockStore()
	reg := NewMemoryRegistry()
	svc := NewService(store, reg, pub, "https://gebo.test/")
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return svc, store, reg
}

func validRequest() types.MintRequest {
	return types.MintRequest{VideoID: "vid-001", ChainID: chains.Hardhat, Owner: owner, TxHash: txHash, TokenID: "7"}
}

func TestRecordMintAppliesDirectly(t *testing.T) {
	svc, store, reg := newTestService(nil)

	rec, err := svc.RecordMint(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("RecordMint: %v", err)
	}
	if rec.ID == "" || rec.Status != types.MintConfirmed {
		t.Errorf("unexpected record: %+v", rec)
	}
	if rec.Owner != strings.ToLower(owner) {
		t.Errorf("owner not normalized: %s", rec.Owner)
	}
	if rec.Contract != "0x5fbdb2315678afecb367f032d93f642f64180aa3" {
		t.Errorf("contract = %s", rec.Contract)
	}
	if rec.TokenURI != "https://gebo.test/api/nft/metadata/vid-001" {
		t.Errorf("token uri = %s", rec.TokenURI)
	}

	v, _ := store.Get(context.Background(), "vid-001")
	if !v.Minted || v.TokenID != "7" || v.ChainID != chains.Hardhat {
		t.Errorf("listing not marked minted: %+v", v)
	}

	owned, _ := reg.ByOwner(context.Background(), strings.ToUpper(owner[:2])+owner[2:])
	if len(owned) != 1 || owned[0].ID != rec.ID {
		t.Errorf("registry by owner = %+v", owned)
	}

	if _, err := svc.RecordMint(context.Background(), validRequest()); !errors.Is(err, ErrAlreadyMinted) {
		t.Errorf("second mint: expected ErrAlreadyMinted, got %v", err)
	}
}

func TestRecordMintValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*types.MintRequest)
		want   error
	}{
		{name: "unsupported chain", mutate: func(r *types.MintRequest) { r.ChainID = 56 }, want: chains.ErrUnsupportedChain},
		{name: "contract not deployed", mutate: func(r *types.MintRequest) { r.ChainID = chains.Polygon }, want: ErrContractNotDeployed},
		{name: "bad owner", mutate: func(r *types.MintRequest) { r.Owner = "0x1234" }, want: ErrInvalidOwner},
		{name: "bad tx hash", mutate: func(r *types.MintRequest) { r.TxHash = "0xzz" }, want: ErrInvalidTxHash},
		{name: "bad token id", mutate: func(r *types.MintRequest) { r.TokenID = "0x1" }, want: ErrInvalidTokenID},
		{name: "unknown video", mutate: func(r *types.MintRequest) { r.VideoID = "vid-999" }, want: listings.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newTestService(nil)
			req := validRequest()
			tt.mutate(&req)
			if _, err := svc.RecordMint(context.Background(), req); !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRecordMintPublishesEvent(t *testing.T) {
	pub := &recordingPublisher{}
	svc, store, _ := newTestService(pub)

	rec, err := svc.RecordMint(context.Background(), validRequest())
	if err != nil {
		t.Fatal(err)
	}
	if len(pub.events) != 1 || pub.keys[0] != "vid-001" || pub.events[0].Record.ID != rec.ID {
		t.Fatalf("published = %+v", pub.events)
	}

	v, _ := store.Get(context.Background(), "vid-001")
	if v.Minted {
		t.Fatal("listing should only change once the event is consumed")
	}

	payload, _ := json.Marshal(pub.events[0])
	mark, err := svc.EventHandler().HandleMessage(context.Background(), payload)
	if err != nil || !mark {
		t.Fatalf("HandleMessage mark=%v err=%v", mark, err)
	}
	v, _ = store.Get(context.Background(), "vid-001")
	if !v.Minted {
		t.Error("listing not minted after consuming event")
	}

	// redelivery is harmless
	if _, err := svc.EventHandler().HandleMessage(context.Background(), payload); err != nil {
		t.Errorf("replay failed: %v", err)
	}
	owned, _ := svc.ByOwner(context.Background(), owner)
	if len(owned) != 1 {
		t.Errorf("replay duplicated records: %+v", owned)
	}
}

func TestRecordMintRejectsSecondPublish(t *testing.T) {
	pub := &recordingPublisher{}
	svc, _, _ := newTestService(pub)

	if _, err := svc.RecordMint(context.Background(), validRequest()); err != nil {
		t.Fatalf("first mint: %v", err)
	}
	// the listing is still unminted until the event is consumed
	req := validRequest()
	req.TxHash = "0x" + strings.Repeat("b", 64)
	if _, err := svc.RecordMint(context.Background(), req); !errors.Is(err, ErrAlreadyMinted) {
		t.Fatalf("second mint: expected ErrAlreadyMinted, got %v", err)
	}
	if len(pub.events) != 1 {
		t.Errorf("published %d events, want 1", len(pub.events))
	}
}

func TestRecordMintConcurrentRequests(t *testing.T) {
	svc, _, reg := newTestService(nil)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.RecordMint(context.Background(), validRequest())
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			} else if !errors.Is(err, ErrAlreadyMinted) {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if succeeded != 1 {
		t.Errorf("%d mints succeeded, want 1", succeeded)
	}
	owned, _ := reg.ByOwner(context.Background(), owner)
	if len(owned) != 1 {
		t.Errorf("registry holds %d records, want 1", len(owned))
	}
}

func TestApplySkipsCompetingRecord(t *testing.T) {
	svc, store, reg := newTestService(nil)
	first := MintEvent{Record: types.MintRecord{ID: "m1", VideoID: "vid-001", Owner: strings.ToLower(owner), TokenID: "1"}}
	second := MintEvent{Record: types.MintRecord{ID: "m2", VideoID: "vid-001", Owner: strings.ToLower(owner), TokenID: "2"}}

	for _, ev := range []MintEvent{first, second} {
		if err := svc.Apply(context.Background(), ev); err != nil {
			t.Fatalf("Apply %s: %v", ev.Record.ID, err)
		}
	}

	rec, found, _ := reg.ByVideo(context.Background(), "vid-001")
	if !found || rec.ID != "m1" {
		t.Errorf("ByVideo = %+v found=%v, want m1", rec, found)
	}
	owned, _ := reg.ByOwner(context.Background(), owner)
	if len(owned) != 1 {
		t.Errorf("owner has %d records, want 1", len(owned))
	}
	v, _ := store.Get(context.Background(), "vid-001")
	if v.TokenID != "1" {
		t.Errorf("token id = %s, want 1", v.TokenID)
	}
}

func TestApplyReleasesClaimOnFailure(t *testing.T) {
	svc, _, reg := newTestService(nil)
	ev := MintEvent{Record: types.MintRecord{ID: "m1", VideoID: "gone", Owner: strings.ToLower(owner)}}

	if err := svc.Apply(context.Background(), ev); !errors.Is(err, listings.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
	if ok, _ := reg.Claim(context.Background(), "gone", "m2"); !ok {
		t.Error("failed apply left the video claimed")
	}
}

func TestMemoryRegistryClaim(t *testing.T) {
	reg := NewMemoryRegistry()
	ctx := context.Background()

	steps := []struct {
		op       string
		recordID string
		want     bool
	}{
		{"claim", "m1", true},
		{"claim", "m1", true},
		{"claim", "m2", false},
		{"release", "m2", false},
		{"claim", "m2", false},
		{"release", "m1", false},
		{"claim", "m2", true},
	}
	for i, s := range steps {
		if s.op == "release" {
			_ = reg.Release(ctx, "vid-001", s.recordID)
			continue
		}
		if got, _ := reg.Claim(ctx, "vid-001", s.recordID); got != s.want {
			t.Errorf("step %d: Claim(%s) = %v, want %v", i, s.recordID, got, s.want)
		}
	}
	if _, found, _ := reg.ByVideo(ctx, "vid-001"); found {
		t.Error("a claim without a saved record should not be found")
	}
}

func TestRecordMintPublishFailureAppliesDirectly(t *testing.T) {
	svc, store, _ := newTestService(&recordingPublisher{err: errors.New("brokers down")})
	if _, err := svc.RecordMint(context.Background(), validRequest()); err != nil {
		t.Fatal(err)
	}
	v, _ := store.Get(context.Background(), "vid-001")
	if !v.Minted {
		t.Error("expected direct apply after publish failure")
	}
}

func TestEventHandlerSkipsUnknownVideo(t *testing.T) {
	svc, _, _ := newTestService(nil)
	payload, _ := json.Marshal(MintEvent{Record: types.MintRecord{ID: "m1", VideoID: "gone", Owner: strings.ToLower(owner)}})
	mark, err := svc.EventHandler().HandleMessage(context.Background(), payload)
	if err != nil || !mark {
		t.Fatalf("mark=%v err=%v, want true/nil", mark, err)
	}
}

func TestByOwnerRejectsBadAddress(t *testing.T) {
	svc, _, _ := newTestService(nil)
	if _, err := svc.ByOwner(context.Background(), "alice"); !errors.Is(err, ErrInvalidOwner) {
		t.Fatalf("got %v", err)
	}
}

func TestBuildMetadata(t *testing.T) {
	v := listings.Catalog()[0]
	m := BuildMetadata(v, "https://gebo.test")

	if m.Name != v.Title || m.Image != v.ThumbnailURL || m.AnimationURL != v.VideoURL {
		t.Errorf("unexpected metadata: %+v", m)
	}
	if m.ExternalURL != "https://gebo.test/videos/"+v.ID {
		t.Errorf("external url = %s", m.ExternalURL)
	}
	traits := map[string]any{}
	for _, a := range m.Attributes {
		if a.TraitType != "Tag" {
			traits[a.TraitType] = a.Value
		}
	}
	if traits["Category"] != v.Category || traits["Duration"] != v.DurationSeconds || traits["Creator"] != v.Creator {
		t.Errorf("traits = %+v", traits)
	}
}

func TestRecordFieldsRoundTrip(t *testing.T) {
	rec := types.MintRecord{
		ID: "m1", VideoID: "vid-002", ChainID: 80002, Contract: "0xabc", TokenID: "3",
		Owner: owner, TxHash: txHash, TokenURI: "u", Status: types.MintConfirmed,
		CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 6, time.UTC),
	}
	got := recordFromFields(recordFields(rec))
	if got.Owner != strings.ToLower(owner) {
		t.Errorf("owner = %s", got.Owner)
	}
	if !got.CreatedAt.Equal(rec.CreatedAt) {
		t.Errorf("created_at = %v", got.CreatedAt)
	}
	got.Owner = rec.Owner
	got.CreatedAt = rec.CreatedAt
	if got != rec {
		t.Errorf("round trip = %+v, want %+v", got, rec)
	}
}
