package mappers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/wfgraph/internal/props"
	"github.com/specialistvlad/wfgraph/internal/registry"
	"github.com/specialistvlad/wfgraph/internal/task"
	"github.com/specialistvlad/wfgraph/internal/workflow"
)

func TestSSH(t *testing.T) {
	xml := `<ssh>
		<host>user@apache.org</host>
		<command>ls</command>
		<args>-l</args>
		<args>-a</args>
		<capture-output/>
	</ssh>`
	m := parsed(t, NewSSH, "ssh_node", xml, nil)

	tasks, relations := m.TasksAndRelations()

	assert.Empty(t, relations)
	assert.Equal(t, []task.Task{task.New("ssh_node", "ssh.tpl", map[string]any{
		"user":           "user",
		"host":           "apache.org",
		"command":        "ls -l -a",
		"capture_output": true,
	})}, tasks)
}

func TestSSH_UserFromProperties(t *testing.T) {
	ps := props.New(map[string]string{"user.name": "pig"}, nil)
	xml := `<ssh><host>example.com</host><command>echo</command><args>two words</args></ssh>`
	m := parsed(t, NewSSH, "ssh_node", xml, ps)

	tasks, _ := m.TasksAndRelations()

	require.Len(t, tasks, 1)
	assert.Equal(t, "pig", tasks[0].TemplateParams["user"])
	assert.Equal(t, "echo 'two words'", tasks[0].TemplateParams["command"])
	assert.Equal(t, false, tasks[0].TemplateParams["capture_output"])
}

func TestShell_WithPrepare(t *testing.T) {
	ps := props.New(map[string]string{"nameNode": "hdfs://localhost:8020"}, nil)
	xml := `<shell>
		<prepare>
			<delete path="${nameNode}/examples/output"/>
			<mkdir path="${nameNode}/examples/input"/>
		</prepare>
		<exec>echo</exec>
		<argument>Hello</argument>
		<argument>Oozie</argument>
	</shell>`
	m := parsed(t, NewShell, "shell_node", xml, ps)

	tasks, relations := m.TasksAndRelations()

	require.Len(t, tasks, 2)
	assert.Equal(t, task.New("shell_node_prepare", "prepare.tpl", map[string]any{
		"delete": "hdfs://localhost:8020/examples/output",
		"mkdir":  "hdfs://localhost:8020/examples/input",
	}), tasks[0])
	assert.Equal(t, "shell_node", tasks[1].TaskID)
	assert.Equal(t, "sh echo Hello Oozie", tasks[1].TemplateParams["pig_command"])
	assert.Equal(t, []task.Relation{{From: "shell_node_prepare", To: "shell_node"}}, relations)
	assert.Contains(t, m.RequiredImports(), "from wfgraph_libs import prepare")
}

func TestPig(t *testing.T) {
	xml := `<pig>
		<name-node>myNameNode</name-node>
		<configuration>
			<property><name>mapred.job.queue.name</name><value>default</value></property>
		</configuration>
		<script>id.pig</script>
		<param>INPUT=/user/${wf:user()}/input</param>
		<param>OUTPUT=/user/out</param>
		<file>/test_dir/test.txt#test_link.txt</file>
		<file>hdfs://other/test2.txt</file>
		<archive>/test_dir/test2.zip#test_zip_dir</archive>
	</pig>`
	m := parsed(t, NewPig, "pig_node", xml, nil).(*Pig)

	assert.Equal(t, []string{"myNameNode/test_dir/test.txt#test_link.txt", "hdfs://other/test2.txt"}, m.Files())
	assert.Equal(t, []string{"myNameNode/test_dir/test2.zip#test_zip_dir"}, m.Archives())
	assert.Equal(t, map[string]string{"mapred.job.queue.name": "default"}, m.Properties())

	tasks, relations := m.TasksAndRelations()
	assert.Empty(t, relations)
	require.Len(t, tasks, 1)
	assert.Equal(t, "id.pig", tasks[0].TemplateParams["script_file_name"])
	assert.Equal(t, map[string]string{
		"INPUT":  "/user/${wf:user()}/input",
		"OUTPUT": "/user/out",
	}, tasks[0].TemplateParams["params_dict"])
}

func TestSpark_ClusterParams(t *testing.T) {
	ps := props.New(nil, map[string]string{"dataproc_cluster": "cluster-main", "gcp_region": "europe-west3"})
	xml := `<spark>
		<master>yarn</master>
		<name>Spark-FileCopy</name>
		<class>org.apache.oozie.example.SparkFileCopy</class>
		<jar>/lib/oozie-examples.jar</jar>
		<spark-opts>--executor-memory 2G</spark-opts>
		<arg>/input</arg>
		<arg>/output</arg>
	</spark>`
	m := parsed(t, NewSpark, "spark_node", xml, ps)

	tasks, _ := m.TasksAndRelations()

	require.Len(t, tasks, 1)
	params := tasks[0].TemplateParams
	assert.Equal(t, "org.apache.oozie.example.SparkFileCopy", params["main_class"])
	assert.Equal(t, []string{"/input", "/output"}, params["arguments"])
	assert.Equal(t, "cluster-main", params["dataproc_cluster"])
	assert.Equal(t, "europe-west3", params["gcp_region"])
}

func TestDistCp(t *testing.T) {
	xml := `<distcp>
		<java-opts>-Dblah</java-opts>
		<arg>hdfs://a/src</arg>
		<arg>hdfs://b/dst</arg>
	</distcp>`
	m := parsed(t, NewDistCp, "distcp_node", xml, nil)

	tasks, _ := m.TasksAndRelations()

	require.Len(t, tasks, 1)
	assert.Equal(t, "--class=org.apache.hadoop.tools.DistCp -- hdfs://a/src hdfs://b/dst", tasks[0].TemplateParams["distcp_command"])
	assert.Equal(t, "-Dblah", tasks[0].TemplateParams["java_opts"])
}

func TestSubWorkflow(t *testing.T) {
	ps := props.New(map[string]string{"nameNode": "hdfs://nn"}, nil)
	xml := `<sub-workflow>
		<app-path>${nameNode}/user/examples/apps/child/</app-path>
		<propagate-configuration/>
	</sub-workflow>`
	m := parsed(t, NewSubWorkflow, "child_node", xml, ps).(*SubWorkflow)

	assert.Equal(t, "child", m.AppName())
	tasks, _ := m.TasksAndRelations()
	require.Len(t, tasks, 1)
	assert.Equal(t, true, tasks[0].TemplateParams["propagate_configuration"])
	assert.Equal(t, "hdfs://nn/user/examples/apps/child/", tasks[0].TemplateParams["app_path"])
}

func TestActions_MissingRequiredElements(t *testing.T) {
	tests := []struct {
		name string
		c    registry.Constructor
		xml  string
	}{
		{name: "ssh without host", c: NewSSH, xml: `<ssh><command>ls</command></ssh>`},
		{name: "ssh without command", c: NewSSH, xml: `<ssh><host>h</host></ssh>`},
		{name: "shell without exec", c: NewShell, xml: `<shell><argument>a</argument></shell>`},
		{name: "pig without script", c: NewPig, xml: `<pig/>`},
		{name: "pig bad param", c: NewPig, xml: `<pig><script>a.pig</script><param>novalue</param></pig>`},
		{name: "spark without jar", c: NewSpark, xml: `<spark><class>A</class></spark>`},
		{name: "distcp without args", c: NewDistCp, xml: `<distcp/>`},
		{name: "sub-workflow without app-path", c: NewSubWorkflow, xml: `<sub-workflow/>`},
		{name: "property without name", c: NewMapReduce, xml: `<map-reduce><configuration><property><value>v</value></property></configuration></map-reduce>`},
		{name: "prepare without path", c: NewMapReduce, xml: `<map-reduce><prepare><delete/></prepare></map-reduce>`},
		{name: "unknown prepare op", c: NewMapReduce, xml: `<map-reduce><prepare><copy path="/a"/></prepare></map-reduce>`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := tc.c(registry.Args{Element: element(t, tc.xml), Name: "node"})
			err := m.OnNodeParsed()
			require.Error(t, err)
			assert.True(t, errors.Is(err, workflow.ErrMalformedInput))
		})
	}
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry(Module{})

	assert.Equal(t, []string{"distcp", "fs", "map-reduce", "pig", "shell", "spark", "ssh", "sub-workflow"}, r.Tags())
	c, fallback := r.Resolve("email")
	assert.True(t, fallback)
	_, isDummy := c(registry.Args{Name: "mail"}).(*Dummy)
	assert.True(t, isDummy)
}
