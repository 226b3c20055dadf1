package persist

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/infinigram-go/cdawg/dawggraph"
	"github.com/infinigram-go/cdawg/record"
	"github.com/infinigram-go/cdawg/token"
)

const (
	nodesFile    = "nodes.bin"
	edgesFile    = "edges.bin"
	tokensFile   = "tokens.bin"
	metadataFile = "metadata.json"
)

// Save materializes g and tb as memory-mapped files under dir, plus a
// metadata.json sidecar recording the end pointer (spec.md §6). dir is
// created if it does not already exist. g and tb may be backed by RAM or
// disk; Save always writes a fresh copy record-by-record, so dir must
// not alias g's or tb's own backing files.
func Save(dir string, g *dawggraph.Graph, tb token.Backing) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("persist: create %q: %w", dir, err)
	}

	nodes, err := record.OpenDiskNodeStore(filepath.Join(dir, nodesFile), 0)
	if err != nil {
		return err
	}
	for i := 0; i < g.Nodes.Len(); i++ {
		nodes.Push(g.Nodes.Get(dawggraph.NodeIndex(i)))
	}
	if err := nodes.Close(); err != nil {
		return err
	}

	edges, err := record.OpenDiskEdgeStore(filepath.Join(dir, edgesFile), 0)
	if err != nil {
		return err
	}
	for i := 0; i < g.Edges.Len(); i++ {
		edges.Push(g.Edges.Get(dawggraph.EdgeIndex(i)))
	}
	if err := edges.Close(); err != nil {
		return err
	}

	tokens, err := token.OpenDiskBacking(filepath.Join(dir, tokensFile), 0)
	if err != nil {
		return err
	}
	for i := 0; i < tb.Len(); i++ {
		tokens.Push(tb.Get(i))
	}
	if err := tokens.Close(); err != nil {
		return err
	}

	return writeMetadata(filepath.Join(dir, metadataFile), Metadata{
		Source:      uint64(dawggraph.Source),
		Sink:        uint64(dawggraph.Sink),
		EndPosition: g.End,
	})
}

// Load opens dir as a memory-mapped graph: metadata.json is parsed for
// the end pointer, and nodes.bin/edges.bin/tokens.bin are opened
// directly as the graph's stores (no copy). A directory with no
// metadata.json is treated as a fresh, empty graph (spec.md §6, "Load
// path"); one with an empty metadata.json fails per ErrEmptyMetadata.
func Load(dir string) (*dawggraph.Graph, token.Backing, error) {
	meta, err := readMetadata(filepath.Join(dir, metadataFile))
	if err != nil {
		return nil, nil, err
	}

	nodeCount, err := fileRecordCount(filepath.Join(dir, nodesFile), record.NodeSize)
	if err != nil {
		return nil, nil, err
	}
	edgeCount, err := fileRecordCount(filepath.Join(dir, edgesFile), record.EdgeSize)
	if err != nil {
		return nil, nil, err
	}
	tokenCount, err := fileRecordCount(filepath.Join(dir, tokensFile), 2)
	if err != nil {
		return nil, nil, err
	}

	nodes, err := record.OpenDiskNodeStore(filepath.Join(dir, nodesFile), nodeCount)
	if err != nil {
		return nil, nil, err
	}
	edges, err := record.OpenDiskEdgeStore(filepath.Join(dir, edgesFile), edgeCount)
	if err != nil {
		nodes.Close()
		return nil, nil, err
	}
	tokens, err := token.OpenDiskBacking(filepath.Join(dir, tokensFile), tokenCount)
	if err != nil {
		nodes.Close()
		edges.Close()
		return nil, nil, err
	}

	g, err := dawggraph.NewGraph(nodes, edges, tokens)
	if err != nil {
		nodes.Close()
		edges.Close()
		tokens.Close()
		return nil, nil, err
	}
	g.End = meta.EndPosition

	return g, tokens, nil
}

// fileRecordCount stats path and returns its size divided by recordSize;
// a missing file reports zero records (a fresh store).
func fileRecordCount(path string, recordSize int64) (int, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("persist: stat %q: %w", path, err)
	}

	return int(info.Size() / recordSize), nil
}
