// api/catalog/seed.go
package catalog

import "res4city/api/models"

func seedCourses() []models.Course {
	return []models.Course{
		{
			ID:          "1",
			Title:       "Introduction to Sustainable Urban Planning",
			Description: "Learn the foundational concepts of planning sustainable cities that reduce carbon footprint while improving quality of life.",
			Thumbnail:   "https://images.unsplash.com/photo-1518494679888-7ffaf6eef303",
			Duration:    "4 weeks",
			LessonCount: 12,
			Tags:        []string{"urban-planning", "green-infrastructure", "water"},
			Category:    "planning",
			Syllabus: []models.Module{
				{
					Title: "Understanding Urban Sustainability",
					Lessons: []models.Lesson{
						{ID: "1-1", Title: "What Makes a City Sustainable?", Duration: "15 min"},
						{ID: "1-2", Title: "History of Urban Planning", Duration: "20 min"},
						{ID: "1-3", Title: "Key Metrics and Goals", Duration: "25 min"},
					},
				},
				{
					Title: "Green Infrastructure",
					Lessons: []models.Lesson{
						{ID: "1-4", Title: "Urban Forests and Green Spaces", Duration: "30 min"},
						{ID: "1-5", Title: "Water Management Systems", Duration: "25 min"},
						{ID: "1-6", Title: "Biodiversity in Cities", Duration: "20 min"},
					},
				},
				{
					Title: "Sustainable Transportation",
					Lessons: []models.Lesson{
						{ID: "1-7", Title: "Public Transit Planning", Duration: "25 min"},
						{ID: "1-8", Title: "Bicycle Infrastructure", Duration: "15 min"},
						{ID: "1-9", Title: "Walkable Cities Design", Duration: "20 min"},
					},
				},
				{
					Title: "Urban Energy Systems",
					Lessons: []models.Lesson{
						{ID: "1-10", Title: "Renewable Energy Integration", Duration: "30 min"},
						{ID: "1-11", Title: "District Heating and Cooling", Duration: "25 min"},
						{ID: "1-12", Title: "Smart Grids for Cities", Duration: "35 min"},
					},
				},
			},
		},
		{
			ID:          "2",
			Title:       "Green Building Design and Technology",
			Description: "Explore cutting-edge approaches to designing buildings that minimize environmental impact and maximize energy efficiency.",
			Thumbnail:   "https://images.unsplash.com/photo-1487958449943-2429e8be8625",
			Duration:    "6 weeks",
			LessonCount: 18,
			Tags:        []string{"architecture", "energy", "green-infrastructure"},
			Category:    "design",
		},
		{
			ID:          "3",
			Title:       "Urban Agriculture and Food Systems",
			Description: "Learn how cities can produce food locally, reduce food miles, and create more resilient local food economies.",
			Thumbnail:   "https://images.unsplash.com/photo-1530836369250-ef72a3f5cda8",
			Duration:    "3 weeks",
			LessonCount: 9,
			Tags:        []string{"food-systems", "circular-economy"},
			Category:    "sustainability",
		},
		{
			ID:          "4",
			Title:       "Smart Cities and IoT",
			Description: "Discover how Internet of Things technologies can make urban systems more efficient, responsive, and sustainable.",
			Thumbnail:   "https://images.unsplash.com/photo-1573164713988-8665fc963095",
			Duration:    "5 weeks",
			LessonCount: 15,
			Tags:        []string{"technology", "data", "urban-planning"},
			Category:    "technology",
		},
		{
			ID:          "5",
			Title:       "Climate Resilient Urban Design",
			Description: "Learn strategies to design cities that can withstand and adapt to climate change impacts like flooding, heat waves, and extreme weather.",
			Thumbnail:   "https://images.unsplash.com/photo-1607237138185-eedd9c632b0b",
			Duration:    "4 weeks",
			LessonCount: 12,
			Tags:        []string{"climate", "water", "urban-planning"},
			Category:    "design",
		},
		{
			ID:          "6",
			Title:       "Circular Economy in Cities",
			Description: "Explore how cities can reduce waste, reuse resources, and create closed-loop systems for materials and energy.",
			Thumbnail:   "https://images.unsplash.com/photo-1532601224476-15c79f2f7a51",
			Duration:    "3 weeks",
			LessonCount: 9,
			Tags:        []string{"circular-economy", "waste", "energy"},
			Category:    "sustainability",
		},
	}
}
