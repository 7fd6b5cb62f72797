package mint

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gebo/chains"
	"gebo/types"

	"github.com/redis/go-redis/v9"
)

// RedisRegistry shares mint records across API instances. Each record is a
// hash, with a set of record ids per owner and a pointer key per video.
type RedisRegistry struct {
	client *redis.Client
	prefix string
}

// NewRedisRegistry wraps a connected client
func NewRedisRegistry(client *redis.Client) *RedisRegistry {
	return &RedisRegistry{client: client, prefix: "gebo:"}
}

func (r *RedisRegistry) recordKey(id string) string { return r.prefix + "mint:" + id }
func (r *RedisRegistry) ownerKey(owner string) string {
	return r.prefix + "owner:" + chains.NormalizeAddress(owner) + ":mints"
}
func (r *RedisRegistry) videoKey(videoID string) string { return r.prefix + "video:" + videoID + ":mint" }

// releaseScript deletes KEYS[1] only while it still holds ARGV[1]
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Claim sets the video pointer with SETNX so only one record id wins
func (r *RedisRegistry) Claim(ctx context.Context, videoID, recordID string) (bool, error) {
	key := r.videoKey(videoID)
	ok, err := r.client.SetNX(ctx, key, recordID, 0).Result()
	if err != nil {
		return false, fmt.Errorf("failed to claim %s: %w", videoID, err)
	}
	if ok {
		return true, nil
	}

	current, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read claim for %s: %w", videoID, err)
	}
	return current == recordID, nil
}

func (r *RedisRegistry) Release(ctx context.Context, videoID, recordID string) error {
	if err := releaseScript.Run(ctx, r.client, []string{r.videoKey(videoID)}, recordID).Err(); err != nil {
		return fmt.Errorf("failed to release %s: %w", videoID, err)
	}
	return nil
}

func (r *RedisRegistry) Save(ctx context.Context, rec types.MintRecord) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, r.recordKey(rec.ID), recordFields(rec))
		pipe.SAdd(ctx, r.ownerKey(rec.Owner), rec.ID)
		pipe.Set(ctx, r.videoKey(rec.VideoID), rec.ID, 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save mint %s: %w", rec.ID, err)
	}
	return nil
}

func (r *RedisRegistry) ByOwner(ctx context.Context, owner string) ([]types.MintRecord, error) {
	ids, err := r.client.SMembers(ctx, r.ownerKey(owner)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list mints for %s: %w", owner, err)
	}
	if len(ids) == 0 {
		return []types.MintRecord{}, nil
	}

	pipe := r.client.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.HGetAll(ctx, r.recordKey(id))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to load mints for %s: %w", owner, err)
	}

	out := make([]types.MintRecord, 0, len(ids))
	for _, cmd := range cmds {
		fields := cmd.Val()
		if len(fields) == 0 {
			continue
		}
		out = append(out, recordFromFields(fields))
	}
	sortRecords(out)
	return out, nil
}

func (r *RedisRegistry) ByVideo(ctx context.Context, videoID string) (types.MintRecord, bool, error) {
	id, err := r.client.Get(ctx, r.videoKey(videoID)).Result()
	if errors.Is(err, redis.Nil) {
		return types.MintRecord{}, false, nil
	}
	if err != nil {
		return types.MintRecord{}, false, fmt.Errorf("failed to look up mint for %s: %w", videoID, err)
	}

	fields, err := r.client.HGetAll(ctx, r.recordKey(id)).Result()
	if err != nil {
		return types.MintRecord{}, false, fmt.Errorf("failed to load mint %s: %w", id, err)
	}
	if len(fields) == 0 {
		return types.MintRecord{}, false, nil
	}
	return recordFromFields(fields), true, nil
}

func recordFields(rec types.MintRecord) map[string]string {
	return map[string]string{
		"id":         rec.ID,
		"video_id":   rec.VideoID,
		"chain_id":   strconv.FormatInt(rec.ChainID, 10),
		"contract":   rec.Contract,
		"token_id":   rec.TokenID,
		"owner":      chains.NormalizeAddress(rec.Owner),
		"tx_hash":    rec.TxHash,
		"token_uri":  rec.TokenURI,
		"status":     rec.Status,
		"created_at": rec.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func recordFromFields(f map[string]string) types.MintRecord {
	chainID, _ := strconv.ParseInt(f["chain_id"], 10, 64)
	createdAt, _ := time.Parse(time.RFC3339Nano, f["created_at"])
	return types.MintRecord{
		ID:        f["id"],
		VideoID:   f["video_id"],
		ChainID:   chainID,
		Contract:  f["contract"],
		TokenID:   f["token_id"],
		Owner:     f["owner"],
		TxHash:    f["tx_hash"],
		TokenURI:  f["token_uri"],
		Status:    f["status"],
		CreatedAt: createdAt,
	}
}
