// Package queue implements a BullMQ-compatible Redis job producer, the
// wire format the original tracking queue speaks under the hood
// (bull:<queue>:wait list, bull:<queue>:delayed zset, bull:<queue>:<id>
// job key, bull:<queue>:meta). The job key and the meta key are each
// written as a single JSON string value, not as a Redis hash. It backs the tracking dispatcher when
// the service is configured to enqueue directly against Redis instead
// of the HTTP queue endpoint.
package queue

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Job mirrors the BullMQ job envelope stored per-id.
type Job struct {
	ID   string          `json:"id"`
	Name string          `json:"name"`
	Data json.RawMessage `json:"data"`
}

// Producer adds jobs to a single named BullMQ queue.
type Producer struct {
	client *redis.Client
	name   string
}

func NewProducer(client *redis.Client, queueName string) *Producer {
	return &Producer{client: client, name: queueName}
}

func (p *Producer) jobKey(id string) string { return "bull:" + p.name + ":" + id }
func (p *Producer) waitKey() string         { return "bull:" + p.name + ":wait" }
func (p *Producer) delayedKey() string      { return "bull:" + p.name + ":delayed" }
func (p *Producer) metaKey() string         { return "bull:" + p.name + ":meta" }

// Add enqueues an immediate job, storing its payload under the job key
// and pushing its id onto the wait list, repairing the wait/delayed
// keys in place if a prior deployment left them as the wrong Redis
// type.
func (p *Producer) Add(ctx context.Context, name string, data interface{}) (string, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return "", err
	}

	jobID := uuid.New().String()
	job := Job{ID: jobID, Name: name, Data: payload}
	jobJSON, err := json.Marshal(job)
	if err != nil {
		return "", err
	}

	if err := p.client.Set(ctx, p.jobKey(jobID), jobJSON, 0).Err(); err != nil {
		return "", err
	}

	if err := p.bootstrapMeta(ctx); err != nil {
		log.Printf("queue: meta bootstrap failed: %v", err)
	}

	p.repairKeyType(ctx, p.waitKey(), "list")
	p.repairKeyType(ctx, p.delayedKey(), "zset")

	if err := p.client.LPush(ctx, p.waitKey(), jobID).Err(); err != nil {
		return "", err
	}

	return jobID, nil
}

// AddDelayed enqueues a job to run after delay, using the delayed
// sorted set keyed by its due Unix timestamp.
func (p *Producer) AddDelayed(ctx context.Context, name string, data interface{}, delay time.Duration) (string, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return "", err
	}

	jobID := uuid.New().String()
	job := Job{ID: jobID, Name: name, Data: payload}
	jobJSON, err := json.Marshal(job)
	if err != nil {
		return "", err
	}

	if err := p.client.Set(ctx, p.jobKey(jobID), jobJSON, 0).Err(); err != nil {
		return "", err
	}

	if err := p.bootstrapMeta(ctx); err != nil {
		log.Printf("queue: meta bootstrap failed: %v", err)
	}

	p.repairKeyType(ctx, p.delayedKey(), "zset")

	due := float64(time.Now().Add(delay).Unix())
	if err := p.client.ZAdd(ctx, p.delayedKey(), redis.Z{Score: due, Member: jobID}).Err(); err != nil {
		return "", err
	}

	return jobID, nil
}

func (p *Producer) bootstrapMeta(ctx context.Context) error {
	exists, err := p.client.Exists(ctx, p.metaKey()).Result()
	if err != nil {
		return err
	}
	if exists > 0 {
		return nil
	}
	meta, _ := json.Marshal(map[string]string{"name": p.name, "ns": "bull"})
	return p.client.Set(ctx, p.metaKey(), meta, 0).Err()
}

// repairKeyType drops a queue key left over from an incompatible
// deployment (e.g. a list where BullMQ now expects a zset).
func (p *Producer) repairKeyType(ctx context.Context, key, wantType string) {
	exists, err := p.client.Exists(ctx, key).Result()
	if err != nil || exists == 0 {
		return
	}
	actual, err := p.client.Type(ctx, key).Result()
	if err != nil {
		return
	}
	if actual != wantType {
		p.client.Del(ctx, key)
	}
}
