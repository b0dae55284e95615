/*
Package builder compiles a workflow document into a *workflow.Workflow.

The build is a multi-phase process:

 1. Indexing: the direct children of the document root are indexed by their
    `name` attribute and the single <start> element is located. The start node
    has no name in the source schema, so one is synthesized
    (`start_node_<suffix>`) that cannot collide with a declared name.

 2. Traversal: starting at the start node, a worklist of node names is
    drained. Each name is resolved to its element and dispatched by tag to a
    handler (start, end, kill, fork, join, decision, action). The handler
    picks the node's mapper and its declared downstream names; action bodies
    are resolved through the registry, with the dummy mapper as fallback.
    The workflow's node map is the visited set, so converging paths create a
    node only once. Fork paths jump the queue so that forked branches are
    visited before anything queued earlier.

 3. Linking: once every node exists, each downstream edge becomes a relation
    from the source node's last task to the target's first task, and each
    error edge a relation from the source's error handler. Targets are
    flagged as ok-path or error-path, which fixes their trigger rules.

 4. Validation and finishing: the node-level graph is checked for cycles, every
    mapper's OnWorkflowFinished hook runs once in completion order, and the
    finished workflow is validated for dangling relations.

Any error aborts the build; the workflow passed to Build must then be
discarded.
*/
package builder
