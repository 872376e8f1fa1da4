// Package io reads radialflow inputs and writes its JSON outputs.
//
// # Record Input
//
// Radial layouts are computed from an ordered list of records. Two shapes
// are accepted, in JSON or YAML (chosen by file extension):
//
//	[
//	  {"task": "docs1", "children": [{"key_value": "section1"}]},
//	  {"primary": "docs2", "refs": ["section1", "section2"]}
//	]
//
// Record order matters: it fixes the slot order on the primary ring. Use
// [ImportRecords] for files or [ReadRecords] for any io.Reader.
//
// # Element Input
//
// The force-directed view reads an element list in the shape used by browser
// graph libraries:
//
//	[
//	  {"data": {"id": "task_1", "label": "Task 1", "typeoflabel": "task"}},
//	  {"data": {"id": "kv_1_1", "label": "KV 1-1", "typeoflabel": "key_value"}},
//	  {"data": {"id": "e_task_1_kv_1_1", "source": "task_1", "target": "kv_1_1"}},
//	  {"data": {"id": "s_kv_1_1_kv_2_3", "source": "kv_1_1", "target": "kv_2_3", "similarity_score": 0.42}}
//	]
//
// [ImportElements] also accepts a record file and converts it.
//
// # Output
//
// [WriteScene] exports a drawable scene (node boxes, routed path data and
// decoration) and [WriteElements] exports a laid-out element list with
// positions. [WriteFile] writes any artifact atomically.
package io
