package postgres

import "github.com/oksasatya/portfolio-api/pkg/listquery"

var userRelation = listquery.Relation{
	Name:   "user",
	Column: "user_id",
	Table:  "users",
	Fields: []string{"id", "email"},
}

var (
	ProjectSchema = &listquery.Schema{
		Table: "projects",
		Fields: []listquery.Field{
			{Name: "id", Type: listquery.UUID},
			{Name: "title", Type: listquery.Text},
			{Name: "description", Type: listquery.Text},
			{Name: "technologies", Type: listquery.TextArray},
			{Name: "github_url", Type: listquery.Text},
			{Name: "live_url", Type: listquery.Text},
			{Name: "image_url", Type: listquery.Text},
			{Name: "user_id", Type: listquery.UUID},
			{Name: "created_at", Type: listquery.Timestamp},
			{Name: "updated_at", Type: listquery.Timestamp},
		},
	}

	SkillSchema = &listquery.Schema{
		Table: "skills",
		Fields: []listquery.Field{
			{Name: "id", Type: listquery.UUID},
			{Name: "name", Type: listquery.Text},
			{Name: "proficiency", Type: listquery.Text},
			{Name: "category", Type: listquery.Text},
			{Name: "user_id", Type: listquery.UUID},
			{Name: "created_at", Type: listquery.Timestamp},
			{Name: "updated_at", Type: listquery.Timestamp},
		},
	}

	ExperienceSchema = &listquery.Schema{
		Table: "experiences",
		Fields: []listquery.Field{
			{Name: "id", Type: listquery.UUID},
			{Name: "title", Type: listquery.Text},
			{Name: "company", Type: listquery.Text},
			{Name: "location", Type: listquery.Text},
			{Name: "from_date", Type: listquery.Date},
			{Name: "to_date", Type: listquery.Date},
			{Name: "current", Type: listquery.Bool},
			{Name: "description", Type: listquery.Text},
			{Name: "user_id", Type: listquery.UUID},
			{Name: "created_at", Type: listquery.Timestamp},
			{Name: "updated_at", Type: listquery.Timestamp},
		},
	}

	// Learning items are listed with their author expanded to {id, email}.
	LearningSchema = &listquery.Schema{
		Table: "learning_items",
		Fields: []listquery.Field{
			{Name: "id", Type: listquery.UUID},
			{Name: "title", Type: listquery.Text},
			{Name: "description", Type: listquery.Text},
			{Name: "status", Type: listquery.Text},
			{Name: "date_started", Type: listquery.Date},
			{Name: "link", Type: listquery.Text},
			{Name: "user_id", Type: listquery.UUID},
			{Name: "created_at", Type: listquery.Timestamp},
			{Name: "updated_at", Type: listquery.Timestamp},
		},
		Relations: []listquery.Relation{userRelation},
	}
)
