package inkpost

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func newTestBucket(t *testing.T) *FSBucket {
	t.Helper()
	bucket, err := NewFSBucket(t.TempDir())
	if err != nil {
		t.Fatalf("NewFSBucket: %v", err)
	}
	return bucket
}

func TestFSBucketPutGet(t *testing.T) {
	bucket := newTestBucket(t)
	ctx := context.Background()

	if err := bucket.Put(ctx, "posts/hello.md", []byte("content")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := bucket.Get(ctx, "posts/hello.md")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "content" {
		t.Errorf("Get = %q, want content", got)
	}
}

func TestFSBucketGetMissing(t *testing.T) {
	bucket := newTestBucket(t)
	_, err := bucket.Get(context.Background(), "posts/nope.md")
	if !errors.Is(err, ErrObjectNotFound) {
		t.Errorf("err = %v, want ErrObjectNotFound", err)
	}
}

func TestFSBucketListPrefix(t *testing.T) {
	bucket := newTestBucket(t)
	ctx := context.Background()
	for _, key := range []string{"posts/b.md", "posts/a.md", "pages/about.md", "images/x.png"} {
		if err := bucket.Put(ctx, key, []byte("x")); err != nil {
			t.Fatalf("Put %s: %v", key, err)
		}
	}

	keys, err := bucket.List(ctx, "posts/")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if want := []string{"posts/a.md", "posts/b.md"}; !reflect.DeepEqual(keys, want) {
		t.Errorf("List = %v, want %v", keys, want)
	}

	all, err := bucket.List(ctx, "")
	if err != nil {
		t.Fatalf("List all: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("List all = %v, want 4 keys", all)
	}
}

func TestFSBucketDelete(t *testing.T) {
	bucket := newTestBucket(t)
	ctx := context.Background()
	if err := bucket.Put(ctx, "posts/gone.md", []byte("x")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := bucket.Delete(ctx, "posts/gone.md"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := bucket.Get(ctx, "posts/gone.md"); !errors.Is(err, ErrObjectNotFound) {
		t.Errorf("Get after delete = %v, want ErrObjectNotFound", err)
	}
	if err := bucket.Delete(ctx, "posts/gone.md"); !errors.Is(err, ErrObjectNotFound) {
		t.Errorf("Delete missing = %v, want ErrObjectNotFound", err)
	}
}

func TestFSBucketRejectsBadKeys(t *testing.T) {
	bucket := newTestBucket(t)
	ctx := context.Background()
	for _, key := range []string{"", "/absolute", "../escape", "posts/../../etc/passwd"} {
		if _, err := bucket.Get(ctx, key); err == nil {
			t.Errorf("Get(%q) succeeded, want error", key)
		}
		if err := bucket.Put(ctx, key, []byte("x")); err == nil {
			t.Errorf("Put(%q) succeeded, want error", key)
		}
	}
}
