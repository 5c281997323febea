// Package ticketstore holds pending upload grants in Redis so they expire on
// their own and can be consumed exactly once across replicas.
package ticketstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/careerflowhq/careerflow-api/internal/domain"
)

const keyPrefix = "upload_ticket:"

// Store implements domain.UploadTicketStore on a Redis client.
type Store struct {
	rdb *redis.Client
}

// New constructs a Store with the given client.
func New(rdb *redis.Client) *Store { return &Store{rdb: rdb} }

// Put stores a ticket under its id with the given TTL.
func (s *Store) Put(ctx domain.Context, t domain.UploadTicket, ttl time.Duration) error {
	raw, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("op=ticket.put: %w", err)
	}
	if err := s.rdb.Set(ctx, keyPrefix+t.ID, raw, ttl).Err(); err != nil {
		return fmt.Errorf("op=ticket.put: %w", err)
	}
	return nil
}

// Take retrieves and deletes a ticket atomically. A missing or expired ticket
// yields ErrNotFound.
func (s *Store) Take(ctx domain.Context, id string) (domain.UploadTicket, error) {
	raw, err := s.rdb.GetDel(ctx, keyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.UploadTicket{}, fmt.Errorf("op=ticket.take: %w", domain.ErrNotFound)
		}
		return domain.UploadTicket{}, fmt.Errorf("op=ticket.take: %w", err)
	}
	var t domain.UploadTicket
	if err := json.Unmarshal(raw, &t); err != nil {
		return domain.UploadTicket{}, fmt.Errorf("op=ticket.take: %w", err)
	}
	return t, nil
}
