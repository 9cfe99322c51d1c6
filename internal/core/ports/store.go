package ports

import "context"

// Item is the wire form of a stored record. Domain types convert to and from
// it explicitly; the store never interprets attributes beyond the key.
type Item = map[string]any

// Collection names a keyed table and the attribute holding its primary key.
// Patients are keyed by normalized email, everything else by opaque id,
// mirroring the remote table layout.
type Collection struct {
	Name    string
	KeyAttr string
}

var (
	Patients     = Collection{Name: "Patients", KeyAttr: "email"}
	Doctors      = Collection{Name: "Doctors", KeyAttr: "id"}
	Appointments = Collection{Name: "Appointments", KeyAttr: "id"}
	Contacts     = Collection{Name: "Contacts", KeyAttr: "id"}
)

// RecordStore is the uniform access contract over the four collections. It
// must behave identically whether backed by an in-process map or a remote
// DynamoDB table:
//
//   - Put is an upsert by primary key; a Get on the same key within the same
//     logical session returns the just-written item (read-your-writes).
//   - ScanAll returns an unordered snapshot that may already be stale; callers
//     treat it as a set and filter client-side.
//   - UpdateField is a partial update and fails with domain.ErrNotFound when
//     the key is absent.
//
// There is no cross-record atomicity and no isolation across concurrent
// writers. Backend I/O failures surface wrapped in domain.ErrStoreUnavailable.
type RecordStore interface {
	Get(ctx context.Context, col Collection, key string) (Item, error)
	Put(ctx context.Context, col Collection, item Item) error
	ScanAll(ctx context.Context, col Collection) ([]Item, error)
	UpdateField(ctx context.Context, col Collection, key, field string, value any) error
	Delete(ctx context.Context, col Collection, key string) error
}
