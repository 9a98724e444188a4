package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/bietkhonhungvandi212/clock-db/internal/storage/buffer"
	"github.com/bietkhonhungvandi212/clock-db/internal/storage/disk"
	"github.com/bietkhonhungvandi212/clock-db/internal/storage/wal"
	util "github.com/bietkhonhungvandi212/clock-db/internal/utils"
)

func main() {
	dir, err := os.MkdirTemp("", "clockdb")
	if err != nil {
		log.Fatalf("temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	opts := util.DefaultOptions()
	opts.Path = filepath.Join(dir, "clockdb.dat")
	opts.WALPath = filepath.Join(dir, "clockdb.wal")

	dm, err := disk.NewFileManager(opts.Path, opts.SyncWrites)
	if err != nil {
		log.Fatalf("open disk store: %v", err)
	}
	defer dm.Close()

	lm, err := wal.Open(opts.WALPath)
	if err != nil {
		log.Fatalf("open log: %v", err)
	}
	defer lm.Close()

	bp := buffer.NewBufferPool(opts.BufferPoolSize, dm, lm)

	// Create a page, mutate it, release it dirty.
	p, err := bp.NewPage()
	if err != nil {
		log.Fatalf("new page: %v", err)
	}
	pageID := p.ID()
	copy(p.Data(), "hello from the buffer pool")
	if err := bp.UnpinPage(pageID, true); err != nil {
		log.Fatalf("unpin page %d: %v", pageID, err)
	}

	if err := bp.FlushAllPages(); err != nil {
		log.Fatalf("flush all: %v", err)
	}

	// Fetch it back; this is a cache hit, no disk access.
	p, err = bp.FetchPage(pageID)
	if err != nil {
		log.Fatalf("fetch page %d: %v", pageID, err)
	}

	fmt.Printf("page %d: %q (pins=%d, dirty=%v)\n",
		p.ID(), string(p.Data()[:26]), p.PinCount(), p.IsDirty())

	if err := bp.UnpinPage(pageID, false); err != nil {
		log.Fatalf("unpin page %d: %v", pageID, err)
	}
}
