package task

// TriggerRule is the conditional-execution mode of a task.
type TriggerRule string

const (
	// TriggerRuleDummy runs the task regardless of upstream outcome.
	TriggerRuleDummy TriggerRule = "dummy"
	// TriggerRuleAllSuccess runs the task only when every upstream task succeeded.
	TriggerRuleAllSuccess TriggerRule = "all_success"
	// TriggerRuleOneFailed runs the task as soon as one upstream task failed.
	TriggerRuleOneFailed TriggerRule = "one_failed"
)

// TriggerRuleFor maps the two path-membership flags of a node onto a rule.
//
//	ok    error   rule
//	true  true    dummy
//	true  false   all_success
//	false true    one_failed
//	false false   dummy
func TriggerRuleFor(isOkPath, isErrorPath bool) TriggerRule {
	switch {
	case isOkPath && !isErrorPath:
		return TriggerRuleAllSuccess
	case !isOkPath && isErrorPath:
		return TriggerRuleOneFailed
	default:
		return TriggerRuleDummy
	}
}
