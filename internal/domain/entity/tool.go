package entity

type ToolName string

const (
	ToolGetWeather   ToolName = "get_weather"
	ToolCalculator   ToolName = "calculator"
	ToolGetTime      ToolName = "get_time"
	ToolCreateTask   ToolName = "create_task"
	ToolListTasks    ToolName = "list_tasks"
	ToolCompleteTask ToolName = "complete_task"
)

func (t ToolName) String() string {
	return string(t)
}
