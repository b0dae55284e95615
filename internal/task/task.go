package task

// Task is a single unit of the translated graph, handed to the renderer as a
// template name plus the parameters that fill it.
type Task struct {
	// TaskID must be unique across the whole workflow.
	TaskID string
	// TemplateName selects the renderer template, e.g. "dummy.tpl".
	TemplateName string
	// TemplateParams are opaque to the compiler and passed through untouched.
	TemplateParams map[string]any
	// TriggerRule decides when the task runs relative to its upstream tasks.
	TriggerRule TriggerRule
}

// New creates a task with the unconditional trigger rule.
func New(id, templateName string, params map[string]any) Task {
	return Task{
		TaskID:         id,
		TemplateName:   templateName,
		TemplateParams: params,
		TriggerRule:    TriggerRuleDummy,
	}
}

// WithTriggerRule returns a copy of the task carrying the given rule.
func (t Task) WithTriggerRule(rule TriggerRule) Task {
	t.TriggerRule = rule
	return t
}
