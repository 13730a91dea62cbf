package store

import "StockGenie/internal/model"

// NoopStore is used when no cache database is configured.
type NoopStore struct{}

func NewNoopStore() *NoopStore { return &NoopStore{} }

func (n *NoopStore) Append(_ string, _ model.Row) (bool, error)  { return false, nil }
func (n *NoopStore) ReplaceRecent(_ string, _ []model.Row) error { return nil }
func (n *NoopStore) RecentDays(_ string) ([]model.Row, error)    { return nil, nil }
func (n *NoopStore) All() (map[string][]model.Row, error)        { return nil, nil }
func (n *NoopStore) Close() error                                { return nil }
