package persistbound

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/hebbgraph/hebbgraph/core"
	"github.com/hebbgraph/hebbgraph/stats"
)

// FormatVersion is written into every blob's header. A Load that sees a
// version it does not recognize fails with ErrCorrupt rather than
// guessing at a compatible layout.
const FormatVersion uint32 = 1

// ErrCorrupt indicates the blob failed a structural check during Load
// (truncated data, a bad length, an edge referencing an unknown node).
// This is §7's Corruption error kind: refuse to enter cycles until
// resolved, never substitute a partially-reconstructed graph.
var ErrCorrupt = errors.New("persistbound: blob is structurally invalid")

// Save dumps g's full state into the append-only binary layout of §6:
// a header, then every node, then every edge, then the RunningStats
// quadruple. Save performs no locking of its own beyond what Graph's
// read accessors already do; the caller is responsible for calling it
// only outside a running cycle (§5).
func Save(g *core.Graph) ([]byte, error) {
	var buf bytes.Buffer

	nodeCount := g.NodeCount()
	if err := binary.Write(&buf, binary.BigEndian, FormatVersion); err != nil {
		return nil, err
	}
	if err := binary.Write(&buf, binary.BigEndian, uint64(nodeCount)); err != nil {
		return nil, err
	}

	var edgeRecords []edgeRecord
	for id := 1; id <= nodeCount; id++ {
		node, err := g.Node(core.NodeID(id))
		if err != nil {
			return nil, err
		}
		if err := writeNodeRecord(&buf, node); err != nil {
			return nil, err
		}
		for _, e := range node.Outgoing() {
			edgeRecords = append(edgeRecords, edgeRecord{
				from: e.From, to: e.To, weight: e.Weight, lastUsed: e.LastUsed,
			})
		}
	}

	if err := binary.Write(&buf, binary.BigEndian, uint64(len(edgeRecords))); err != nil {
		return nil, err
	}
	for _, e := range edgeRecords {
		if err := writeEdgeRecord(&buf, e); err != nil {
			return nil, err
		}
	}

	snap := g.StatsSnapshot()
	for _, s := range []stats.Snapshot{snap.Activation, snap.Confidence, snap.Error, snap.PathLength} {
		if err := writeStatsTriple(&buf, s); err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}

// Load reconstructs a Graph from a blob produced by Save: same stats
// snapshot, same node ids, payloads, levels and port ids, same edges,
// same STOP sentinel. Hierarchy nodes come back with a nil Components
// list, since the blob does not record it.
func Load(blob []byte) (*core.Graph, error) {
	r := bytes.NewReader(blob)

	var version uint32
	if err := binary.Read(r, binary.BigEndian, &version); err != nil {
		return nil, fmt.Errorf("%w: reading version: %v", ErrCorrupt, err)
	}
	if version != FormatVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrCorrupt, version)
	}

	var nodeCount uint64
	if err := binary.Read(r, binary.BigEndian, &nodeCount); err != nil {
		return nil, fmt.Errorf("%w: reading node count: %v", ErrCorrupt, err)
	}

	g := core.NewEmptyGraph()
	stopPayload := core.StopPayload()

	for i := uint64(0); i < nodeCount; i++ {
		level, portID, payload, err := readNodeRecord(r)
		if err != nil {
			return nil, fmt.Errorf("%w: reading node %d: %v", ErrCorrupt, i, err)
		}
		id, err := g.RestoreNode(payload, level, portID, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: restoring node %d: %v", ErrCorrupt, i, err)
		}
		if bytes.Equal(payload, stopPayload) {
			g.MarkStopNode(id)
		}
	}

	var edgeCount uint64
	if err := binary.Read(r, binary.BigEndian, &edgeCount); err != nil {
		return nil, fmt.Errorf("%w: reading edge count: %v", ErrCorrupt, err)
	}
	for i := uint64(0); i < edgeCount; i++ {
		e, err := readEdgeRecord(r)
		if err != nil {
			return nil, fmt.Errorf("%w: reading edge %d: %v", ErrCorrupt, i, err)
		}
		if err := g.RestoreEdge(e.from, e.to, e.weight, e.lastUsed); err != nil {
			return nil, fmt.Errorf("%w: restoring edge %d: %v", ErrCorrupt, i, err)
		}
	}

	var quad stats.QuadSnapshot
	triples := []*stats.Snapshot{&quad.Activation, &quad.Confidence, &quad.Error, &quad.PathLength}
	for _, t := range triples {
		s, err := readStatsTriple(r)
		if err != nil {
			return nil, fmt.Errorf("%w: reading stats: %v", ErrCorrupt, err)
		}
		*t = s
	}
	g.RestoreStats(quad)

	if r.Len() != 0 {
		return nil, fmt.Errorf("%w: trailing bytes after stats", ErrCorrupt)
	}

	return g, nil
}

type edgeRecord struct {
	from, to core.NodeID
	weight   uint8
	lastUsed uint64
}

func writeNodeRecord(w io.Writer, n *core.Node) error {
	if err := binary.Write(w, binary.BigEndian, n.AbstractionLevel); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, n.PortID); err != nil {
		return err
	}
	return writeBytesWithLength(w, n.Payload)
}

func readNodeRecord(r *bytes.Reader) (level uint8, portID uint8, payload []byte, err error) {
	if err = binary.Read(r, binary.BigEndian, &level); err != nil {
		return
	}
	if err = binary.Read(r, binary.BigEndian, &portID); err != nil {
		return
	}
	payload, err = readBytesWithLength(r)
	return
}

// writeEdgeRecord truncates last_used to 32 bits per §6's logical
// layout ("last_used (4 bytes)"); a wave generation past 2^32 wraps in
// the saved blob, since the on-disk field is not widened.
func writeEdgeRecord(w io.Writer, e edgeRecord) error {
	if err := binary.Write(w, binary.BigEndian, uint64(e.from)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, uint64(e.to)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, e.weight); err != nil {
		return err
	}
	return binary.Write(w, binary.BigEndian, uint32(e.lastUsed))
}

func readEdgeRecord(r io.Reader) (edgeRecord, error) {
	var from, to uint64
	var weight uint8
	var lastUsed uint32

	if err := binary.Read(r, binary.BigEndian, &from); err != nil {
		return edgeRecord{}, err
	}
	if err := binary.Read(r, binary.BigEndian, &to); err != nil {
		return edgeRecord{}, err
	}
	if err := binary.Read(r, binary.BigEndian, &weight); err != nil {
		return edgeRecord{}, err
	}
	if err := binary.Read(r, binary.BigEndian, &lastUsed); err != nil {
		return edgeRecord{}, err
	}
	return edgeRecord{from: core.NodeID(from), to: core.NodeID(to), weight: weight, lastUsed: uint64(lastUsed)}, nil
}

func writeStatsTriple(w io.Writer, s stats.Snapshot) error {
	if err := binary.Write(w, binary.BigEndian, s.Count); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, s.Mean); err != nil {
		return err
	}
	return binary.Write(w, binary.BigEndian, s.M2)
}

func readStatsTriple(r io.Reader) (stats.Snapshot, error) {
	var s stats.Snapshot
	if err := binary.Read(r, binary.BigEndian, &s.Count); err != nil {
		return s, err
	}
	if err := binary.Read(r, binary.BigEndian, &s.Mean); err != nil {
		return s, err
	}
	if err := binary.Read(r, binary.BigEndian, &s.M2); err != nil {
		return s, err
	}
	return s, nil
}

func writeBytesWithLength(w io.Writer, b []byte) error {
	var lenBuf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(lenBuf[:], uint64(len(b)))
	if _, err := w.Write(lenBuf[:n]); err != nil {
		return err
	}
	_, err := w.Write(b)
	return err
}

func readBytesWithLength(r *bytes.Reader) ([]byte, error) {
	length, err := binary.ReadUvarint(r)
	if err != nil {
		return nil, err
	}
	b := make([]byte, length)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return b, nil
}
