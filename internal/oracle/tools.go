// tools.go

package oracle

import (
	"google.golang.org/genai"
)

// toolDeclarations 四个工具声明，所有人格共用
var toolDeclarations = []*genai.FunctionDeclaration{
	{
		Name:        "suggest_quest",
		Description: "Propose a new quest/task for the user based on their goals or weaknesses. Can optionally target a specific skill.",
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"title":       {Type: genai.TypeString, Description: "Short title of the quest (RPG style)"},
				"description": {Type: genai.TypeString, Description: "Detailed description of the task"},
				"type": {
					Type:        genai.TypeString,
					Description: "Stat type associated with the quest. Can be a Core Stat (Strength, Int, etc.) OR a Custom Stat name defined by the user.",
				},
				"difficulty": {
					Type:        genai.TypeString,
					Description: "Difficulty level",
					Enum:        []string{"Easy", "Medium", "Hard", "Legendary"},
				},
				"xpReward":  {Type: genai.TypeNumber, Description: "XP reward (20-200)"},
				"skillName": {Type: genai.TypeString, Description: "Name of the specific sub-skill to target (e.g., 'Python', 'Yoga'). Only use if the user has this skill."},
			},
			Required: []string{"title", "description", "type", "difficulty", "xpReward"},
		},
	},
	{
		Name:        "plan_campaign",
		Description: "Create a massive Life Objective (Boss) and break it down into specific sub-quests. Use this when the user wants to achieve a major goal like 'Finish College' or 'Get a Girlfriend'.",
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"bossName":        {Type: genai.TypeString, Description: "Creative RPG Name for the goal (e.g., 'The Diploma Dragon' for College, 'The Specter of Solitude' for dating)."},
				"title":           {Type: genai.TypeString, Description: "The actual real-world goal (e.g., 'Obtain Bachelor's Degree')."},
				"description":     {Type: genai.TypeString, Description: "Motivational description of the struggle."},
				"hp":              {Type: genai.TypeNumber, Description: "Total HP (e.g., 1000). Usually 100 per sub-quest."},
				"bossImagePrompt": {Type: genai.TypeString, Description: "A prompt to generate a scary cyberpunk monster representing this obstacle."},
				"subQuests": {
					Type:        genai.TypeArray,
					Description: "A list of 3-6 concrete, actionable steps to achieve this goal.",
					Items: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"title":       {Type: genai.TypeString},
							"description": {Type: genai.TypeString},
							"difficulty":  {Type: genai.TypeString, Enum: []string{"Easy", "Medium", "Hard", "Legendary"}},
							"type":        {Type: genai.TypeString, Description: "Stat Type (STR, INT, CHA, etc)"},
						},
						Required: []string{"title", "description", "difficulty", "type"},
					},
				},
			},
			Required: []string{"bossName", "title", "description", "hp", "subQuests", "bossImagePrompt"},
		},
	},
	{
		Name:        "suggest_virtue",
		Description: "Propose a new virtue for the user to track.",
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"name":        {Type: genai.TypeString, Description: "Name of the virtue (e.g., Courage)"},
				"description": {Type: genai.TypeString, Description: "Brief description of the virtue"},
			},
			Required: []string{"name", "description"},
		},
	},
	{
		Name:        "suggest_hero",
		Description: "Summon a historical or legendary figure to the Hall of Heroes to serve as a role model. Assigns estimated stats and skills.",
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"name":        {Type: genai.TypeString, Description: "Name of the figure (e.g., David Goggins, Seneca)"},
				"title":       {Type: genai.TypeString, Description: "An epithet (e.g., The Hardest Man Alive)"},
				"description": {Type: genai.TypeString, Description: "A 2-sentence bio explaining why they are legendary."},
				"stats": {
					Type:        genai.TypeObject,
					Description: "Estimated stats on a scale of 0-300. Legends should be 200+.",
					Properties: map[string]*genai.Schema{
						"Strength":     {Type: genai.TypeNumber},
						"Dexterity":    {Type: genai.TypeNumber},
						"Intelligence": {Type: genai.TypeNumber},
						"Charisma":     {Type: genai.TypeNumber},
						"Constitution": {Type: genai.TypeNumber},
					},
					Required: []string{"Strength", "Dexterity", "Intelligence", "Charisma", "Constitution"},
				},
				"skills": {
					Type:        genai.TypeArray,
					Description: "A list of 3-4 specific skills or areas of expertise this hero possessed.",
					Items: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"name": {Type: genai.TypeString, Description: "Name of the skill (e.g. 'Stoicism', 'Archery')"},
							"type": {Type: genai.TypeString, Description: "The Core Stat (e.g. 'Strength') or Custom Stat associated with this skill."},
						},
						Required: []string{"name", "type"},
					},
				},
				"quotes": {
					Type:        genai.TypeArray,
					Description: "A list of 2-3 famous or representative quotes from this figure.",
					Items:       &genai.Schema{Type: genai.TypeString},
				},
			},
			Required: []string{"name", "title", "description", "stats", "skills", "quotes"},
		},
	},
}
