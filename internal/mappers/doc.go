// Package mappers implements the workflow.Mapper contract for the control
// nodes (start, end, kill, fork, join, decision) and for the action types the
// compiler knows about (fs, ssh, shell, pig, spark, map-reduce, distcp,
// sub-workflow). Every other action type falls back to Dummy.
//
// Action mappers receive the action body element (e.g. <fs>) and parse it in
// OnNodeParsed; TasksAndRelations only assembles what was parsed. Element
// text goes through props.PropertySet.Resolve before it is used.
package mappers
