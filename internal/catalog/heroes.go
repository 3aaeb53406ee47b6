package catalog

import (
	"github.com/jacl-coder/LudusVitae-Server/internal/models"
)

// InitialHeroes 新玩家的初始英雄档案
var InitialHeroes = []models.Hero{
	{
		ID:          "h1",
		Name:        "Marcus Aurelius",
		Title:       "The Philosopher King",
		Description: "Roman Emperor and Stoic philosopher. Ruled with temperance and wisdom amidst war and plague.",
		ImageURL:    "https://upload.wikimedia.org/wikipedia/commons/thumb/9/92/Marcus_Aurelius_Met_14.40.698.jpg/800px-Marcus_Aurelius_Met_14.40.698.jpg",
		Stats: map[models.StatType]int{
			models.StatStrength:     220,
			models.StatDexterity:    150,
			models.StatIntelligence: 300,
			models.StatCharisma:     280,
			models.StatConstitution: 250,
		},
		Skills: []models.HeroSkill{
			{Name: "Stoic Philosophy", Type: string(models.StatIntelligence)},
			{Name: "Journaling", Type: string(models.StatIntelligence)},
			{Name: "Command", Type: string(models.StatCharisma)},
		},
		Tags: []string{"Stoic", "Leader", "Writer"},
		Quotes: []string{
			"You have power over your mind - not outside events. Realize this, and you will find strength.",
			"The happiness of your life depends upon the quality of your thoughts.",
			"Waste no more time arguing about what a good man should be. Be one.",
		},
	},
	{
		ID:          "h2",
		Name:        "Miyamoto Musashi",
		Title:       "The Sword Saint",
		Description: "Undefeated swordsman, philosopher, and artist. Author of The Book of Five Rings.",
		ImageURL:    "https://upload.wikimedia.org/wikipedia/commons/thumb/0/07/Miyamoto_Musashi_Self-Portrait.jpg/640px-Miyamoto_Musashi_Self-Portrait.jpg",
		Stats: map[models.StatType]int{
			models.StatStrength:     280,
			models.StatDexterity:    300,
			models.StatIntelligence: 240,
			models.StatCharisma:     120,
			models.StatConstitution: 290,
		},
		Skills: []models.HeroSkill{
			{Name: "Dual Wielding", Type: string(models.StatDexterity)},
			{Name: "Strategy", Type: string(models.StatIntelligence)},
			{Name: "Calligraphy", Type: string(models.StatDexterity)},
		},
		Tags: []string{"Warrior", "Artist", "Discipline"},
		Quotes: []string{
			"Think lightly of yourself and deeply of the world.",
			"Do nothing which is of no use.",
			"You must understand that there is more than one path to the top of the mountain.",
		},
	},
	{
		ID:          "h3",
		Name:        "Leonardo da Vinci",
		Title:       "The Universal Genius",
		Description: "Polymath of the High Renaissance. Master of art, science, engineering, and anatomy.",
		ImageURL:    "https://upload.wikimedia.org/wikipedia/commons/thumb/b/b8/Leonardo_da_Vinci_-_presumed_self-portrait_-_WGA12798.jpg/640px-Leonardo_da_Vinci_-_presumed_self-portrait_-_WGA12798.jpg",
		Stats: map[models.StatType]int{
			models.StatStrength:     140,
			models.StatDexterity:    260,
			models.StatIntelligence: 300,
			models.StatCharisma:     200,
			models.StatConstitution: 150,
		},
		Skills: []models.HeroSkill{
			{Name: "Painting", Type: string(models.StatDexterity)},
			{Name: "Anatomy", Type: string(models.StatIntelligence)},
			{Name: "Invention", Type: string(models.StatIntelligence)},
		},
		Tags: []string{"Polymath", "Inventor", "Artist"},
		Quotes: []string{
			"Simplicity is the ultimate sophistication.",
			"Learning never exhausts the mind.",
			"I love those who can smile in trouble.",
		},
	},
}
