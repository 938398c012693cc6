package catalog

// DefaultCategory is the category selected when a session starts.
const DefaultCategory = "landing"

// Default returns the built-in showcase catalog.
func Default() *Catalog {
	return MustNew([]Category{
		{Name: "landing", Components: []Descriptor{
			{ID: "landing1", Name: "Landing 1", Path: "/components/landing/landing1.html",
				Tags: []string{"hero", "cta", "gradient"}, Description: "Modern SaaS platform landing with gradient overlay"},
			{ID: "landing2", Name: "Landing 2", Path: "/components/landing/landing2.html",
				Tags: []string{"product", "launch", "modern"}, Description: "Product launch page with announcement badge"},
			{ID: "landing3", Name: "Landing 3", Path: "/components/landing/landing3.html"},
		}},
		{Name: "navbar", Components: []Descriptor{
			{ID: "navbar1", Name: "Modern Navbar", Path: "/components/navbar/navbar1.html",
				Tags: []string{"navigation", "sticky", "responsive"}},
			{ID: "navbar2", Name: "Navbar 2", Path: "/components/navbar/navbar2.html"},
			{ID: "navbar3", Name: "Navbar with multiple columns dropdown", Path: "/components/navbar/navbar3.html"},
			{ID: "pageNavbar", Name: "Page Navbar", Path: "/components/navbar/pageNavbar.html"},
		}},
		{Name: "login", Components: []Descriptor{
			{ID: "login1", Name: "Login 1", Path: "/components/login/login1.html",
				Tags: []string{"authentication", "form"}},
			{ID: "login2", Name: "Login 2", Path: "/components/login/login2.html"},
			{ID: "loginPage", Name: "Login Page", Path: "/components/login/loginPage.html"},
		}},
		{Name: "review", Components: []Descriptor{
			{ID: "review1", Name: "Review Card 1", Path: "/components/reviews/review1.html",
				Tags: []string{"testimonial", "card", "rating"}},
			{ID: "review2", Name: "Review Card 2", Path: "/components/reviews/review2.html"},
			{ID: "rating1", Name: "Rating Widget", Path: "/components/reviews/rating1.html"},
			{ID: "rating2", Name: "Share Your Experience", Path: "/components/reviews/rating2.html"},
		}},
		{Name: "contact", Components: []Descriptor{
			{ID: "contact1", Name: "Contact 1", Path: "/components/contact/contact1.html",
				Tags: []string{"form", "contact", "social"}},
			{ID: "contact2", Name: "Contact 2", Path: "/components/contact/contact2.html"},
			{ID: "contact3", Name: "Request Consultation", Path: "/components/contact/contact3.html"},
		}},
		{Name: "webApp", Components: []Descriptor{
			{ID: "vision", Name: "Vision Page", Path: "/components/WebPages/vision.html",
				Tags: []string{"full-page", "illustration"}},
			{ID: "page2", Name: "Nexus Flow Page", Path: "/components/WebPages/nexus.html"},
			{ID: "professor", Name: "Professor Page", Path: "/components/WebPages/proffessor.html"},
			{ID: "robot", Name: "Robot Page", Path: "/components/WebPages/robo.html"},
			{ID: "space", Name: "Space Page", Path: "/components/WebPages/space.html"},
			{ID: "photographer", Name: "Photographer Page", Path: "/components/WebPages/fotographer.html"},
		}},
	})
}
