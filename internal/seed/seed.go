// Package seed populates an empty database with the starter community:
// eight hubs, a representative set of posts across all four post types, and
// a few threaded comments. Seeding is idempotent; a database that already
// has hubs is left untouched.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/sreddit/sreddit/internal/models"
)

// Stats reports what a seeding run created.
type Stats struct {
	Hubs     int
	Posts    int
	Comments int
	Skipped  bool
}

type post struct {
	models.Post
	comments []comment
}

type comment struct {
	author   string
	authorID string
	content  string
	votes    int
	age      time.Duration
	replies  []comment
}

// Run seeds the database relative to now, so scholarship deadlines land in
// every urgency band and post ages produce a sensible hot ranking.
func Run(ctx context.Context, db *gorm.DB, now time.Time) (Stats, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&models.Hub{}).Count(&count).Error; err != nil {
		return Stats{}, fmt.Errorf("checking existing data: %w", err)
	}
	if count > 0 {
		return Stats{Skipped: true}, nil
	}

	hubs := hubData()
	posts := postData(now)

	stats := Stats{Hubs: len(hubs), Posts: len(posts)}
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&hubs).Error; err != nil {
			return fmt.Errorf("seeding hubs: %w", err)
		}
		for i := range posts {
			if err := tx.Create(&posts[i].Post).Error; err != nil {
				return fmt.Errorf("seeding post %q: %w", posts[i].Title, err)
			}
			n, err := seedComments(tx, posts[i].ID, nil, posts[i].comments, now)
			if err != nil {
				return err
			}
			stats.Comments += n
		}
		return nil
	})
	if err != nil {
		return Stats{}, err
	}
	return stats, nil
}

func seedComments(tx *gorm.DB, postID uint, parentID *uint, comments []comment, now time.Time) (int, error) {
	total := 0
	for _, c := range comments {
		record := models.Comment{
			PostID:    postID,
			ParentID:  parentID,
			Author:    c.author,
			AuthorID:  c.authorID,
			Content:   c.content,
			Votes:     c.votes,
			CreatedAt: now.Add(-c.age),
		}
		if err := tx.Create(&record).Error; err != nil {
			return total, fmt.Errorf("seeding comment: %w", err)
		}
		total++
		n, err := seedComments(tx, postID, &record.ID, c.replies, now)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

func hubData() []models.Hub {
	return []models.Hub{
		{Name: "Graduate Studies", Icon: "🎓", Members: 12400, Description: "Discussions about Masters and PhD opportunities worldwide"},
		{Name: "Undergraduate", Icon: "📚", Members: 8900, Description: "Bachelor degree scholarships, tips, and application help"},
		{Name: "STEM Majors", Icon: "🔬", Members: 6700, Description: "Science, Technology, Engineering, and Math scholarships"},
		{Name: "Essay Tips", Icon: "✍️", Members: 5200, Description: "SOP, personal statements, and essay writing help"},
		{Name: "Success Stories", Icon: "🏆", Members: 4800, Description: "Share and celebrate scholarship wins from the community"},
		{Name: "Women in Education", Icon: "👩‍🎓", Members: 3900, Description: "Scholarships and opportunities for women and female students"},
		{Name: "First Generation", Icon: "🌟", Members: 3200, Description: "Support and resources for first-gen college students"},
		{Name: "Resources", Icon: "📁", Members: 7600, Description: "Databases, tools, guides, and helpful links for applicants"},
	}
}

func postData(now time.Time) []post {
	hoursAgo := func(h float64) time.Time {
		return now.Add(-time.Duration(h * float64(time.Hour)))
	}
	daysAgo := func(d int) time.Time { return now.AddDate(0, 0, -d) }
	daysFromNow := func(d int) time.Time { return now.AddDate(0, 0, d) }

	return []post{
		{
			Post: models.Post{
				Type:      models.TypeScholarship,
				Title:     "Fulbright Foreign Student Program 2026-2027 - Full Funding Available",
				Content:   "The Fulbright Program is the flagship international educational exchange program sponsored by the U.S. government. It provides funding for graduate studies, research, and teaching assistantships.\n\nBenefits include:\n- Full tuition coverage\n- Monthly living stipend\n- Round-trip airfare\n- Health insurance\n\nThe program emphasizes cultural exchange and mutual understanding between nations.",
				Hub:       "Graduate Studies",
				Author:    "Anonymous",
				AuthorID:  "anon_seed_1",
				Votes:     342,
				Comments:  3,
				Tags:      pq.StringArray{"Full Ride", "STEM", "Graduate", "USA"},
				CreatedAt: hoursAgo(2),
				Scholarship: &models.Scholarship{
					Country:     "United States",
					Degree:      "Masters/PhD",
					Deadline:    daysFromNow(35),
					Provider:    "U.S. Department of State",
					Eligibility: "International students with Bachelor's degree",
					URL:         "https://foreign.fulbrightonline.org/",
				},
			},
			comments: []comment{
				{
					author:   "ScholarMentor",
					authorID: "user_comment_1",
					content:  "Great opportunity! I applied to this program last year and got accepted. The key is to have a strong research proposal that aligns with U.S. national interests.",
					votes:    45,
					age:      time.Hour,
					replies: []comment{
						{
							author:   "Anonymous",
							authorID: "anon_comment_1",
							content:  "Could you share more about your research proposal? I'm struggling with mine and would love some guidance.",
							votes:    12,
							age:      30 * time.Minute,
						},
					},
				},
				{
					author:   "Anonymous",
					authorID: "anon_comment_2",
					content:  "The deadline is coming up fast! Make sure you have all your documents ready at least 2 weeks in advance.",
					votes:    23,
					age:      90 * time.Minute,
				},
			},
		},
		{
			Post: models.Post{
				Type:      models.TypeQuestion,
				Title:     "How do I write a compelling Statement of Purpose for competitive scholarships?",
				Content:   "I'm applying to several fully-funded master's programs and struggling with my SOP. What makes a statement stand out? Should I focus more on academic achievements or personal story?\n\nI have:\n- 3.7 GPA\n- 2 years work experience\n- Some volunteer work\n\nAny tips from those who successfully got scholarships would be greatly appreciated!",
				Hub:       "Essay Tips",
				Author:    "ScholarSeeker23",
				AuthorID:  "user_seed_23",
				Votes:     156,
				Comments:  1,
				Tags:      pq.StringArray{"Question", "SOP", "Tips"},
				CreatedAt: hoursAgo(5),
			},
			comments: []comment{
				{
					author:   "AdmissionsExpert",
					authorID: "user_comment_2",
					content:  "Balance is key! Start with a hook that shows your passion, then weave in achievements that demonstrate capability. End with clear goals tied to the program.\n\nAvoid:\n- Generic statements\n- Listing achievements without context\n- Being too humble or too boastful",
					votes:    67,
					age:      4 * time.Hour,
				},
			},
		},
		{
			Post: models.Post{
				Type:      models.TypeExperience,
				Title:     "I got accepted to Chevening! Here's my complete timeline and tips",
				Content:   "After 3 years of applying, I finally received my Chevening acceptance! Let me share my journey, including rejection learnings and what I changed in my final application.\n\n**Timeline:**\n- August 2025: Application submitted\n- November 2025: Shortlisted for interview\n- January 2026: Interview in local British Embassy\n- March 2026: Conditional offer received!\n\n**What worked for me:**\n1. Genuine leadership examples (not just positions)\n2. Clear UK university choices with reasons\n3. Specific networking plans\n4. Strong recommendation letters\n\nAMA in the comments!",
				Hub:       "Success Stories",
				Author:    "Anonymous",
				AuthorID:  "anon_seed_3",
				Votes:     523,
				Comments:  1,
				Tags:      pq.StringArray{"Chevening", "UK", "Success Story", "Experience"},
				CreatedAt: hoursAgo(8),
			},
			comments: []comment{
				{
					author:   "FutureChevener",
					authorID: "user_comment_3",
					content:  "Congratulations! This is so inspiring. Could you elaborate on how you prepared for the interview? What questions did they ask?",
					votes:    34,
					age:      7 * time.Hour,
				},
			},
		},
		{
			Post: models.Post{
				Type:      models.TypeScholarship,
				Title:     "DAAD Scholarships 2026 - Study in Germany for Free",
				Content:   "The German Academic Exchange Service (DAAD) offers various scholarship programs for international students to pursue their studies in Germany.\n\n**Available Programs:**\n- Study Scholarships for Graduates\n- Research Grants for Doctoral Candidates\n\n**Benefits:**\n- Monthly payments of 934 to 1,400 euros\n- Travel allowance\n- Health insurance\n- German language course funding\n\nGermany has no tuition fees at public universities, making this an even better deal!",
				Hub:       "Graduate Studies",
				Author:    "Anonymous",
				AuthorID:  "anon_seed_4",
				Votes:     278,
				Comments:  0,
				Tags:      pq.StringArray{"STEM", "Europe", "Full Ride", "Germany"},
				CreatedAt: hoursAgo(12),
				Scholarship: &models.Scholarship{
					Country:     "Germany",
					Degree:      "Masters/PhD",
					Deadline:    daysFromNow(49),
					Provider:    "DAAD - German Academic Exchange Service",
					Eligibility: "All international students with completed Bachelor's",
					URL:         "https://www.daad.de/en/",
				},
			},
		},
		{
			Post: models.Post{
				Type:      models.TypeDiscussion,
				Title:     "Resources for Finding Lesser-Known Fully Funded Scholarships",
				Content:   "Let's compile a list of underrated scholarship databases and resources. I'll start:\n\n**Databases:**\n- ScholarshipOwl\n- Fastweb\n- Scholarship Portal (Europe)\n\n**Lesser-known sources:**\n- Local embassy education offices\n- Professional associations in your field\n- University-specific scholarships (not listed publicly)\n\nPlease add your favorites in the comments!",
				Hub:       "Resources",
				Author:    "GradHunter",
				AuthorID:  "user_seed_47",
				Votes:     198,
				Comments:  0,
				Tags:      pq.StringArray{"Resources", "Database", "Discussion"},
				CreatedAt: daysAgo(1),
			},
		},
		{
			Post: models.Post{
				Type:         models.TypeQuestion,
				Title:        "First-generation college student - which scholarships prioritize our background?",
				Content:      "I'm the first in my family to attend university. Are there scholarships that specifically look for first-gen students? Would appreciate any recommendations.\n\nI'm interested in:\n- Computer Science\n- Business Administration\n- Any STEM field\n\nCurrently in my final year of high school with a 3.8 GPA.",
				Hub:          "First Generation",
				Author:       "Anonymous",
				AuthorID:     "anon_seed_6",
				Votes:        89,
				Comments:     0,
				Tags:         pq.StringArray{"First-Gen", "Question", "Undergraduate"},
				IsUnanswered: true,
				CreatedAt:    hoursAgo(3),
			},
		},
		{
			Post: models.Post{
				Type:      models.TypeScholarship,
				Title:     "Gates Cambridge Scholarship 2026 - University of Cambridge",
				Content:   "Full-cost scholarship covering tuition, living expenses, and travel for outstanding applicants from outside the UK to pursue a postgraduate degree at Cambridge.\n\n**Covers:**\n- University fees\n- Maintenance allowance\n- One return flight\n- Visa costs\n\n**Selection criteria:**\n1. Outstanding intellectual ability\n2. Leadership potential\n3. Commitment to improving lives of others\n4. Good fit with Cambridge",
				Hub:       "Graduate Studies",
				Author:    "Anonymous",
				AuthorID:  "anon_seed_7",
				Votes:     412,
				Comments:  0,
				Tags:      pq.StringArray{"Full Ride", "UK", "Graduate", "Cambridge"},
				CreatedAt: hoursAgo(6),
				Scholarship: &models.Scholarship{
					Country:     "United Kingdom",
					Degree:      "Masters/PhD",
					Deadline:    daysFromNow(9),
					Provider:    "Gates Cambridge Trust",
					Eligibility: "Non-UK citizens with outstanding academic record",
					URL:         "https://www.gatescambridge.org/",
				},
			},
		},
		{
			Post: models.Post{
				Type:      models.TypeScholarship,
				Title:     "Erasmus Mundus Joint Master Degrees 2026 - Study in Multiple EU Countries",
				Content:   "Erasmus Mundus offers fully-funded master's programs taught across multiple European universities.\n\n**Unique features:**\n- Study in 2-3 different European countries\n- Get a joint/double/multiple degree\n- Full scholarship for non-EU students\n\n**Coverage:**\n- Tuition fees\n- 1,400 euros/month living costs\n- Travel allowance\n\nOver 100 different master's programs available across all fields!",
				Hub:       "Graduate Studies",
				Author:    "EuroScholar",
				AuthorID:  "user_seed_89",
				Votes:     234,
				Comments:  0,
				Tags:      pq.StringArray{"Full Ride", "Europe", "Masters", "Erasmus"},
				CreatedAt: hoursAgo(10),
				Scholarship: &models.Scholarship{
					Country:     "Multiple EU Countries",
					Degree:      "Masters",
					Deadline:    daysFromNow(20),
					Provider:    "European Commission",
					Eligibility: "All international students",
					URL:         "https://erasmus-plus.ec.europa.eu/",
				},
			},
		},
		{
			Post: models.Post{
				Type:      models.TypeExperience,
				Title:     "Rejected 5 times, finally got the DAAD scholarship - lessons learned",
				Content:   "My journey to the DAAD scholarship was not straightforward. Here's what I learned from 5 rejections:\n\n**Year 1-2: Generic applications**\n- Copy-pasted motivation letters\n- Result: Immediate rejections\n\n**Year 3-4: Better but not there**\n- Personalized letters but weak connections\n- Result: Waitlisted then rejected\n\n**Year 5: Finally got it!**\n- Connected my research interests with specific professors\n- Showed German language commitment (B1 level)\n- Had pre-admission from the university\n\nDon't give up! Each rejection teaches you something.",
				Hub:       "Success Stories",
				Author:    "Anonymous",
				AuthorID:  "anon_seed_12",
				Votes:     387,
				Comments:  0,
				Tags:      pq.StringArray{"DAAD", "Germany", "Experience", "Motivation"},
				CreatedAt: daysAgo(2),
			},
		},
		{
			Post: models.Post{
				Type:      models.TypeDiscussion,
				Title:     "Best countries for fully-funded PhD programs in 2026?",
				Content:   "I'm researching PhD opportunities and want to understand which countries offer the best funding packages.\n\n**Fully-funded by default:**\n- Germany (no tuition + stipend)\n- Norway, Sweden, Finland (employed as researchers)\n- Switzerland (very high stipends)\n\n**Strong funding available:**\n- USA (but competitive)\n- UK (for select programs)\n- Canada\n- Australia\n\nWhat are your experiences? Which countries should I prioritize?",
				Hub:       "Graduate Studies",
				Author:    "PhDHopeful",
				AuthorID:  "user_seed_33",
				Votes:     145,
				Comments:  0,
				Tags:      pq.StringArray{"PhD", "Discussion", "Funding"},
				CreatedAt: hoursAgo(18),
			},
		},
		{
			Post: models.Post{
				Type:      models.TypeQuestion,
				Title:     "How important is GRE for international scholarships in 2026?",
				Content:   "I've noticed many programs made GRE optional during COVID. Is it still worth taking?\n\nMy situation:\n- Applying to US and European programs\n- Strong academic background (3.9 GPA)\n- Limited budget for test fees\n\nSpecifically wondering about:\n1. Fulbright requirements\n2. Top US universities\n3. European programs\n\nThanks for any insights!",
				Hub:       "Graduate Studies",
				Author:    "Anonymous",
				AuthorID:  "anon_seed_15",
				Votes:     112,
				Comments:  0,
				Tags:      pq.StringArray{"GRE", "Question", "USA", "Europe"},
				CreatedAt: hoursAgo(7),
			},
		},
		{
			Post: models.Post{
				Type:      models.TypeScholarship,
				Title:     "Australian Awards Scholarships 2026 - Full Funding for Developing Countries",
				Content:   "The Australian Government provides scholarships for students from developing countries to undertake full-time undergraduate or postgraduate study in Australia.\n\n**Benefits:**\n- Full tuition fees\n- Return air travel\n- Establishment allowance\n- Living expenses\n- Health insurance\n\n**Eligibility:**\n- Citizens of participating countries\n- Not hold Australian citizenship\n- Meet academic requirements",
				Hub:       "Graduate Studies",
				Author:    "AussieScholar",
				AuthorID:  "user_seed_55",
				Votes:     189,
				Comments:  0,
				Tags:      pq.StringArray{"Full Ride", "Australia", "Government"},
				CreatedAt: daysAgo(3),
				Scholarship: &models.Scholarship{
					Country:     "Australia",
					Degree:      "Bachelors/Masters/PhD",
					Deadline:    daysFromNow(60),
					Provider:    "Australian Government DFAT",
					Eligibility: "Citizens of participating developing countries",
					URL:         "https://www.dfat.gov.au/people-to-people/australia-awards",
				},
			},
		},
	}
}
