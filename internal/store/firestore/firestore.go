package firestore

import (
	"context"
	"fmt"

	fs "cloud.google.com/go/firestore"
	"github.com/DonSam77/reservasjs/internal/store"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Store is a store.Store over Cloud Firestore. Collection arguments are
// slash-separated paths, so sub-collections ("salas/r1/calificaciones")
// resolve natively.
type Store struct {
	client *fs.Client
}

var _ store.Store = (*Store)(nil)

// Options selects the project, database and credentials of the client.
// An empty ProjectID is detected from the credentials. An empty
// CredentialsFile falls back to application default credentials, which
// also covers FIRESTORE_EMULATOR_HOST.
type Options struct {
	ProjectID       string
	DatabaseID      string
	CredentialsFile string
}

// Open creates the Firestore client.
func Open(ctx context.Context, o Options) (*Store, error) {
	project := o.ProjectID
	if project == "" {
		project = fs.DetectProjectID
	}
	database := o.DatabaseID
	if database == "" {
		database = fs.DefaultDatabaseID
	}
	var opts []option.ClientOption
	if o.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(o.CredentialsFile))
	}
	c, err := fs.NewClientWithDatabase(ctx, project, database, opts...)
	if err != nil {
		return nil, fmt.Errorf("firestore client: %w", err)
	}
	return &Store{client: c}, nil
}

// New wraps an existing client.
func New(c *fs.Client) *Store { return &Store{client: c} }

func (s *Store) Close() error { return s.client.Close() }

func (s *Store) collection(path string) (*fs.CollectionRef, error) {
	ref := s.client.Collection(path)
	if ref == nil {
		return nil, fmt.Errorf("invalid collection path %q", path)
	}
	return ref, nil
}

func (s *Store) doc(collection, id string) (*fs.DocumentRef, error) {
	col, err := s.collection(collection)
	if err != nil {
		return nil, err
	}
	ref := col.Doc(id)
	if ref == nil {
		return nil, fmt.Errorf("invalid document id %q", id)
	}
	return ref, nil
}

func (s *Store) Get(ctx context.Context, collection, id string) (store.Document, error) {
	ref, err := s.doc(collection, id)
	if err != nil {
		return store.Document{}, err
	}
	snap, err := ref.Get(ctx)
	if err != nil {
		return store.Document{}, mapErr(err, "get %s/%s", collection, id)
	}
	return store.Document{ID: snap.Ref.ID, Data: snap.Data()}, nil
}

func (s *Store) List(ctx context.Context, collection string) ([]store.Document, error) {
	col, err := s.collection(collection)
	if err != nil {
		return nil, err
	}
	snaps, err := col.Documents(ctx).GetAll()
	if err != nil {
		return nil, mapErr(err, "list %s", collection)
	}
	out := make([]store.Document, 0, len(snaps))
	for _, snap := range snaps {
		out = append(out, store.Document{ID: snap.Ref.ID, Data: snap.Data()})
	}
	return out, nil
}

func (s *Store) Add(ctx context.Context, collection string, fields map[string]any) (string, error) {
	col, err := s.collection(collection)
	if err != nil {
		return "", err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	ref, _, err := col.Add(ctx, fields)
	if err != nil {
		return "", mapErr(err, "add %s", collection)
	}
	return ref.ID, nil
}

// Update relies on Firestore's implicit exists precondition for updates, so
// the check and the write are a single server-side operation.
func (s *Store) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	ref, err := s.doc(collection, id)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		_, err := ref.Get(ctx)
		return mapErr(err, "update %s/%s", collection, id)
	}
	_, err = ref.Update(ctx, Updates(fields))
	return mapErr(err, "update %s/%s", collection, id)
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	ref, err := s.doc(collection, id)
	if err != nil {
		return err
	}
	_, err = ref.Delete(ctx)
	return mapErr(err, "delete %s/%s", collection, id)
}

// Updates turns a field map into top-level field updates. Keys are used as
// single field path segments so dots in keys are not treated as nesting.
func Updates(fields map[string]any) []fs.Update {
	out := make([]fs.Update, 0, len(fields))
	for k, v := range fields {
		out = append(out, fs.Update{FieldPath: fs.FieldPath{k}, Value: v})
	}
	return out
}

func mapErr(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	if status.Code(err) == codes.NotFound {
		return store.ErrNotFound
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}
