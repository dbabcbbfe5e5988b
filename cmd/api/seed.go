package main

import (
	"time"

	"github.com/google/uuid"

	"prepmate/internal/interviews"
)

// seedLocalInterviews returns demo interviews for local development. The owner
// UIDs are placeholders; sign up with any account and the feed shows all of
// them since none match a real session UID.
func seedLocalInterviews() []interviews.Interview {
	now := time.Now().UTC()

	return []interviews.Interview{
		{
			ID:        uuid.New(),
			UserID:    "demo-user-1",
			Role:      "Frontend Developer",
			Type:      "technical",
			TechStack: []string{"react", "typescript", "tailwind"},
			Questions: []string{
				"How does React reconcile the virtual DOM with the real DOM?",
				"When would you reach for useMemo over useCallback?",
				"Walk me through debugging a hydration mismatch.",
			},
			Finalized: true,
			CreatedAt: now.Add(-2 * time.Hour),
		},
		{
			ID:        uuid.New(),
			UserID:    "demo-user-1",
			Role:      "Full-Stack Engineer",
			Type:      "mixed",
			TechStack: []string{"nextjs", "postgres", "docker"},
			Questions: []string{
				"Describe a time you had to make a latency/consistency trade-off.",
				"How would you paginate a feed backed by Postgres?",
			},
			Finalized: true,
			CreatedAt: now.Add(-26 * time.Hour),
		},
		{
			ID:        uuid.New(),
			UserID:    "demo-user-2",
			Role:      "Backend Engineer",
			Type:      "technical",
			TechStack: []string{"go", "grpc", "kubernetes"},
			Questions: []string{
				"How do goroutine leaks happen and how do you find them?",
				"Design a rate limiter for a multi-tenant API.",
				"What does context cancellation actually propagate?",
			},
			Finalized: true,
			CreatedAt: now.Add(-3 * 24 * time.Hour),
		},
		{
			ID:        uuid.New(),
			UserID:    "demo-user-2",
			Role:      "DevOps Engineer",
			Type:      "behavioral",
			TechStack: []string{"terraform", "aws"},
			Questions: []string{
				"Tell me about an incident you ran point on.",
			},
			// Still being generated; must not appear in the public feed.
			Finalized: false,
			CreatedAt: now.Add(-30 * time.Minute),
		},
		{
			ID:        uuid.New(),
			UserID:    "demo-user-3",
			Role:      "Data Engineer",
			Type:      "technical",
			TechStack: []string{"python", "spark", "airflow"},
			Questions: []string{
				"Batch versus streaming: how do you choose?",
				"How do you backfill a partitioned table without downtime?",
			},
			Finalized: true,
			CreatedAt: now.Add(-5 * 24 * time.Hour),
		},
	}
}
