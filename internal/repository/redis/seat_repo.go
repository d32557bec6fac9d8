package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	SeatCntTTL = 24 * time.Hour
	LockTTL    = 300 * time.Millisecond
)

// SeatCacheRepository 缓存每个场次的已报名人数，列表页省掉 COUNT 查询
type SeatCacheRepository struct {
	seatCntTTL time.Duration
}

// DistLock 场次级分布式锁，toggle 写库前抢一下，减少同一场次的并发冲突
type DistLock struct {
	RDB *redis.Client
}

func NewSeatCacheRepository() *SeatCacheRepository {
	return &SeatCacheRepository{seatCntTTL: SeatCntTTL}
}

func (r *SeatCacheRepository) seatCntKey(sessionID uint64) string {
	return key(fmt.Sprintf("seat:cnt:session:%d", sessionID))
}

// Incr 报名成功后调用
func (r *SeatCacheRepository) Incr(ctx context.Context, sessionID uint64) error {
	ck := r.seatCntKey(sessionID)
	if err := Client.Incr(ctx, ck).Err(); err != nil {
		return err
	}
	_ = Client.Expire(ctx, ck, r.seatCntTTL).Err()
	return nil
}

// Decr 退出后调用，计数防负数
func (r *SeatCacheRepository) Decr(ctx context.Context, sessionID uint64) error {
	ck := r.seatCntKey(sessionID)
	return Client.Watch(ctx, func(tx *redis.Tx) error {
		val, err := tx.Get(ctx, ck).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if val <= 0 {
			// 不存在或已经是 0，交给回填兜底
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Decr(ctx, ck)
			return nil
		})
		return err
	}, ck)
}

// GetCached 读缓存人数，miss 时由调用方查库回填
func (r *SeatCacheRepository) GetCached(ctx context.Context, sessionID uint64) (int64, bool, error) {
	val, err := Client.Get(ctx, r.seatCntKey(sessionID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	return val, true, err
}

// SetCount 回填人数
func (r *SeatCacheRepository) SetCount(ctx context.Context, sessionID uint64, cnt int64) error {
	return Client.Set(ctx, r.seatCntKey(sessionID), cnt, r.seatCntTTL).Err()
}

// DeleteCount 删除计数缓存，delay>0 时延迟再删一次，抵消并发回填窗口
func (r *SeatCacheRepository) DeleteCount(ctx context.Context, sessionID uint64, delay ...time.Duration) error {
	ck := r.seatCntKey(sessionID)
	if err := Client.Del(ctx, ck).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	if len(delay) > 0 && delay[0] > 0 {
		d := delay[0]
		go func() {
			t := time.NewTimer(d)
			defer t.Stop()
			<-t.C
			_ = Client.Del(context.Background(), ck).Err()
		}()
	}
	return nil
}

func lockKey(sessionID uint64) string {
	return key(fmt.Sprintf("lock:toggle:session:%d", sessionID))
}

// Acquire 请求加锁
func (l *DistLock) Acquire(ctx context.Context, sessionID uint64, token string) (bool, error) {
	return l.RDB.SetNX(ctx, lockKey(sessionID), token, LockTTL).Result()
}

// Release 用 lua 保证只释放自己的锁
func (l *DistLock) Release(ctx context.Context, sessionID uint64, token string) error {
	_, err := redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
  return redis.call("del", KEYS[1])
else
  return 0
end`).Run(ctx, l.RDB, []string{lockKey(sessionID)}, token).Result()
	return err
}
