// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package binder

// sectionDefaults holds the built-in payload for every section key the
// front end knows. Fetched content is merged over these field by field;
// a section the CMS has never filled in renders entirely from here.
var sectionDefaults = map[string]Section{
	"hero_slides": {
		"slides": []any{
			map[string]any{
				"title":       "Strengthening the Church in Kenya",
				"subtitle":    "Association of Pentecostal and Evangelical Clergy of Kenya",
				"description": "Uniting clergy across all 47 counties for fellowship, accountability and service.",
				"image":       "/assets/hero/clergy-gathering.jpg",
				"imageMobile": "/assets/hero/clergy-gathering-mobile.jpg",
				"buttons": []any{
					map[string]any{"label": "Become a Member", "href": "/membership", "style": "primary", "icon": "user-plus"},
					map[string]any{"label": "Our Programs", "href": "/programs", "style": "secondary", "icon": "arrow-right"},
				},
			},
		},
	},
	"who_we_are": {
		"badgeLabel":  "Who We Are",
		"title":       "A Fellowship of Clergy, Serving Together",
		"description": "APECK brings together Pentecostal and Evangelical ministers for mutual support, doctrinal soundness and coordinated community service.",
		"image":       "/assets/home/who-we-are.jpg",
		"highlights": []any{
			"Registered clergy in every county",
			"Ministerial training and accreditation",
			"A united voice for the evangelical church",
		},
	},
	"impact_stats": {
		"title": "Our Reach",
		"stats": []any{
			map[string]any{"value": "5,000+", "label": "Registered Clergy"},
			map[string]any{"value": "47", "label": "Counties Covered"},
			map[string]any{"value": "120+", "label": "Partner Churches"},
			map[string]any{"value": "15", "label": "Years of Service"},
		},
	},
	"programs": {
		"badgeLabel":  "What We Do",
		"title":       "Programs That Serve Church and Community",
		"description": "From clergy development to community outreach, our programs equip ministers and transform neighbourhoods.",
		"cards": []any{
			map[string]any{
				"title":       "Clergy Development",
				"description": "Training, mentorship and accreditation for ministers at every stage.",
				"image":       "/assets/programs/clergy-development.jpg",
				"href":        "/programs",
			},
			map[string]any{
				"title":       "Community Outreach",
				"description": "Church-led initiatives reaching the vulnerable in our communities.",
				"image":       "/assets/programs/community-outreach.jpg",
				"href":        "/programs",
			},
		},
	},
	"testimonials": {
		"title": "Voices From Our Members",
		"testimonials": []any{
			map[string]any{
				"quote": "APECK gave my ministry structure, accountability and a family of fellow servants.",
				"name":  "Rev. Samuel Kiprono",
				"role":  "Member since 2015",
				"image": "/assets/testimonials/member-1.jpg",
			},
		},
	},
	"news_updates": {
		"badgeLabel":  "News & Updates",
		"title":       "The Latest From APECK",
		"description": "Announcements, events and stories from across the association.",
	},
	"cta": {
		"title":        "Join a Growing Fellowship of Clergy",
		"description":  "Register today and stand with thousands of ministers serving Kenya together.",
		"primaryCta":   map[string]any{"label": "Apply for Membership", "href": "/membership"},
		"secondaryCta": map[string]any{"label": "Contact Us", "href": "/contact"},
	},

	"about_hero": {
		"title":    "About APECK",
		"subtitle": "Who we are, what we believe and where we are going.",
		"image":    "/assets/about/hero.jpg",
	},
	"about_story": {
		"title":       "Our Story",
		"description": "Founded by a small circle of ministers seeking fellowship and accountability, APECK has grown into a national association of Pentecostal and Evangelical clergy.",
		"image":       "/assets/about/story.jpg",
	},
	"about_mission_vision": {
		"missionTitle":       "Our Mission",
		"missionDescription": "To unite, equip and accredit Pentecostal and Evangelical clergy for effective ministry.",
		"missionIcon":        "target",
		"visionTitle":        "Our Vision",
		"visionDescription":  "A credible, united evangelical clergy transforming Kenya.",
		"visionIcon":         "eye",
	},
	"about_values": {
		"title": "Our Values",
		"values": []any{
			map[string]any{"title": "Integrity", "description": "Ministry above reproach.", "icon": "shield"},
			map[string]any{"title": "Fellowship", "description": "No minister serves alone.", "icon": "users"},
			map[string]any{"title": "Service", "description": "The church exists for the community.", "icon": "heart"},
		},
	},
	"about_leadership": {
		"badgeLabel":  "Leadership",
		"title":       "Servant Leaders",
		"description": "The national executive guiding the association.",
		"leaders": []any{
			map[string]any{
				"name":        "Bishop David Mwangi",
				"role":        "National Chairman",
				"description": "Serving the association since its founding.",
				"image":       "/assets/leadership/chairman.jpg",
			},
		},
	},

	"programs_hero": {
		"title":    "Our Programs",
		"subtitle": "Equipping clergy, serving communities.",
		"image":    "/assets/programs/hero.jpg",
	},
	"programs_intro": {
		"title":       "How We Serve",
		"description": "Every program flows from our conviction that a healthy church produces a healthy community.",
	},
	"programs_cbr": {
		"title":       "Church-Based Rehabilitation",
		"description": "Local congregations walking with people in recovery, offering counsel, community and practical support.",
		"image":       "/assets/programs/cbr.jpg",
		"items": []any{
			"Addiction recovery fellowships",
			"Pastoral counselling",
			"Family restoration",
		},
	},
	"programs_aftercare": {
		"title":       "Aftercare & Reintegration",
		"description": "Continued support for people rejoining their communities, anchored in the local church.",
		"image":       "/assets/programs/aftercare.jpg",
		"items": []any{
			"Mentorship pairings",
			"Vocational training referrals",
			"Follow-up home visits",
		},
	},
	"programs_features": {
		"title":       "Program Features",
		"description": "What makes our programs exceptional.",
		"features": []any{
			map[string]any{
				"title":       "Expert Instructors",
				"description": "Learn from experienced ministry leaders and theologians.",
				"icon":        "graduation-cap",
			},
			map[string]any{
				"title":       "Practical Training",
				"description": "Hands-on experience and real-world ministry applications.",
				"icon":        "book-open",
			},
			map[string]any{
				"title":       "Certification",
				"description": "Receive recognized certificates upon program completion.",
				"icon":        "award",
			},
			map[string]any{
				"title":       "Community",
				"description": "Connect with fellow clergy and build lasting relationships.",
				"icon":        "users",
			},
		},
	},
	"programs_cta": {
		"title":       "Ready to Grow in Your Ministry?",
		"description": "Enroll in one of our programs and take your ministry to the next level.",
		"primaryCta":  map[string]any{"label": "Enroll Now", "href": "/membership"},
	},
	"programs_initiatives": {
		"title":       "National Initiatives",
		"description": "Association-wide campaigns that bring member churches together around a common cause.",
		"image":       "/assets/programs/initiatives.jpg",
		"items": []any{
			"Annual clergy convention",
			"County chapter forums",
			"Inter-church relief drives",
		},
	},

	"gallery_hero": {
		"title":    "Gallery",
		"subtitle": "Moments from our gatherings and outreach.",
	},
	"gallery_items": {
		"items": []any{
			map[string]any{"title": "National Convention", "category": "events", "image": "/assets/gallery/convention.jpg"},
			map[string]any{"title": "Community Outreach", "category": "outreach", "image": "/assets/gallery/outreach.jpg"},
		},
	},
	"gallery_impact_stats": {
		"title":       "Our Impact in Pictures",
		"description": "Documenting our journey of faith and service.",
		"stats": []any{
			map[string]any{"value": "500+", "label": "Events Documented"},
			map[string]any{"value": "10,000+", "label": "Photos Captured"},
			map[string]any{"value": "47", "label": "Counties Covered"},
			map[string]any{"value": "15", "label": "Years of Memories"},
		},
	},
}
