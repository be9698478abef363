package domain

import "time"

// Fixtures returns the reference content collection, newest first, with
// timestamps relative to now.
func Fixtures(now time.Time) []ContentItem {
	day := 24 * time.Hour
	return []ContentItem{
		{
			ID:          "1",
			Title:       "Complete Guide to React Server Components",
			Description: "Learn how to build faster React applications using Server Components with practical examples and best practices.",
			Category:    "React",
			Stage:       Published{Slug: "react-server-components", Author: "Sarah Chen"},
			CreatedAt:   now.Add(-day),
			UpdatedAt:   now.Add(-day),
			Tags:        []string{"React", "Performance", "SSR"},
		},
		{
			ID:          "2",
			Title:       "Next.js 14 SEO Optimization Techniques",
			Description: "Master SEO in Next.js 14 with App Router, metadata API, and advanced optimization strategies.",
			Category:    "Next.js",
			Stage:       InProgress{Author: "Alex Rivera"},
			CreatedAt:   now.Add(-2 * day),
			UpdatedAt:   now.Add(-day),
			Tags:        []string{"Next.js", "SEO", "Performance"},
		},
		{
			ID:          "3",
			Title:       "TypeScript Advanced Patterns for Large Applications",
			Description: "Explore advanced TypeScript patterns including conditional types, mapped types, and utility types for scalable codebases.",
			Category:    "TypeScript",
			Stage:       Requested{},
			CreatedAt:   now.Add(-3 * day),
			UpdatedAt:   now.Add(-3 * day),
			Tags:        []string{"TypeScript", "Patterns", "Architecture"},
		},
		{
			ID:          "4",
			Title:       "Building Accessible React Components",
			Description: "Create inclusive React components with proper ARIA attributes, keyboard navigation, and screen reader support.",
			Category:    "Accessibility",
			Stage:       Published{Slug: "accessible-react-components", Author: "Maya Patel"},
			CreatedAt:   now.Add(-4 * day),
			UpdatedAt:   now.Add(-4 * day),
			Tags:        []string{"React", "Accessibility", "UX"},
		},
	}
}
