package cluster

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// GenOptions sizes a synthetic dataset. Zero fields take the defaults
// documented on each field.
type GenOptions struct {
	Tasks            int // default 25
	KeyValuesPerTask int // default 10
	SimilarityEdges  int // attempts, default 70
	Seed             uint64
}

func (o *GenOptions) setDefaults() {
	if o.Tasks <= 0 {
		o.Tasks = 25
	}
	if o.KeyValuesPerTask <= 0 {
		o.KeyValuesPerTask = 10
	}
	if o.SimilarityEdges < 0 {
		o.SimilarityEdges = 0
	} else if o.SimilarityEdges == 0 {
		o.SimilarityEdges = 70
	}
}

// Generate builds a deterministic synthetic graph: tasks, their key-values,
// task edges e_<task>_<kv> and random similarity edges s_<a>_<b> between
// key-values with scores rounded to two decimals. Self-loops and repeated
// pairs are skipped, so fewer than SimilarityEdges edges may be produced.
func Generate(opts GenOptions) []Element {
	opts.setDefaults()
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed+1))

	var nodes, edges []Element
	var kvs []string
	for i := 1; i <= opts.Tasks; i++ {
		task := fmt.Sprintf("task_%d", i)
		nodes = append(nodes, Task(task, fmt.Sprintf("Task %d", i)))
		for j := 1; j <= opts.KeyValuesPerTask; j++ {
			kv := fmt.Sprintf("kv_%d_%d", i, j)
			kvs = append(kvs, kv)
			nodes = append(nodes, KeyValue(kv, fmt.Sprintf("KV %d-%d", i, j)))
			edges = append(edges, Link("e_"+task+"_"+kv, task, kv))
		}
	}

	seen := make(map[string]bool)
	for range opts.SimilarityEdges {
		a, b := kvs[rng.IntN(len(kvs))], kvs[rng.IntN(len(kvs))]
		score := math.Round(rng.Float64()*100) / 100
		id := "s_" + a + "_" + b
		if a == b || seen[id] {
			continue
		}
		seen[id] = true
		edges = append(edges, Similar(id, a, b, score))
	}
	return append(nodes, edges...)
}
