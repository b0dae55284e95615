package mappers

import (
	"github.com/specialistvlad/wfgraph/internal/registry"
	"github.com/specialistvlad/wfgraph/internal/task"
	"github.com/specialistvlad/wfgraph/internal/workflow"
)

const sparkTemplate = "spark.tpl"

// Spark submits a Spark job; cluster settings come from the graph settings.
type Spark struct {
	actionBase
	jobName   string
	mainClass string
	mainJar   string
	sparkOpts string
	arguments []string
}

// NewSpark is registered for <spark> action bodies.
func NewSpark(args registry.Args) workflow.Mapper {
	return &Spark{actionBase: actionBase{base: newBase(args)}}
}

func (m *Spark) OnNodeParsed() error {
	if err := m.parseCommon(); err != nil {
		return err
	}
	m.jobName = m.text("name")
	m.mainClass = m.text("class")
	m.mainJar = m.text("jar")
	if m.mainJar == "" {
		return workflow.Malformedf(m.name, "spark action has no <jar>")
	}
	m.sparkOpts = m.text("spark-opts")
	m.arguments = m.texts("arg")
	return nil
}

func (m *Spark) TasksAndRelations() ([]task.Task, []task.Relation) {
	params := m.commonParams()
	params["job_name"] = m.jobName
	params["main_class"] = m.mainClass
	params["main_jar"] = m.mainJar
	params["spark_opts"] = m.sparkOpts
	params["arguments"] = m.arguments
	addClusterParams(params, m.props.Config)
	return m.withPrepare(task.New(m.name, sparkTemplate, params))
}

func (m *Spark) RequiredImports() []string {
	return append(m.actionBase.RequiredImports(), "from airflow.contrib.operators import dataproc_operator")
}

// addClusterParams copies the cluster placement settings of the run configuration.
func addClusterParams(params map[string]any, config func(string) (string, bool)) {
	for _, key := range []string{"dataproc_cluster", "gcp_region"} {
		if v, ok := config(key); ok {
			params[key] = v
		}
	}
}
