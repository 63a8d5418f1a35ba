package site

import (
	"html/template"
	"net/http"
	"strconv"

	"github.com/jisub/folio/internal/markdown"
	"github.com/jisub/folio/internal/store"
)

type homeData struct {
	Meta        siteMeta
	Featured    []store.Project
	RecentPosts []store.Post
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	featured, err := s.db.FeaturedProjects(3)
	if err != nil {
		s.serverError(w, "load featured projects", err)
		return
	}
	recent, err := s.db.RecentPosts(3)
	if err != nil {
		s.serverError(w, "load recent posts", err)
		return
	}
	s.render(w, http.StatusOK, "home", homeData{
		Meta:        s.meta(),
		Featured:    featured,
		RecentPosts: recent,
	})
}

// pagination describes the current page window of a post list.
type pagination struct {
	Page     int
	PerPage  int
	Total    int
	LastPage int
}

func (p pagination) HasPrev() bool { return p.Page > 1 }
func (p pagination) HasNext() bool { return p.Page < p.LastPage }
func (p pagination) Prev() int     { return p.Page - 1 }
func (p pagination) Next() int     { return p.Page + 1 }

func paginate(page, perPage, total int) pagination {
	// perPage < 1 means pagination is off: everything on one page.
	if perPage < 1 {
		return pagination{Page: 1, PerPage: perPage, Total: total, LastPage: 1}
	}
	last := (total + perPage - 1) / perPage
	if last < 1 {
		last = 1
	}
	if page > last {
		page = last
	}
	return pagination{Page: page, PerPage: perPage, Total: total, LastPage: last}
}

type blogData struct {
	Meta       siteMeta
	Posts      []store.Post
	Categories []store.CategoryCount
	Category   string
	Query      string
	Pagination pagination
}

func (s *Server) handleBlog(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	filter := store.PostFilter{
		Category: r.URL.Query().Get("category"),
		Query:    r.URL.Query().Get("q"),
		Page:     page,
		PerPage:  s.cfg.PostsPerPage,
	}

	total, err := s.db.CountPosts(filter)
	if err != nil {
		s.serverError(w, "count posts", err)
		return
	}
	pg := paginate(page, filter.PerPage, total)
	filter.Page = pg.Page

	posts, err := s.db.ListPosts(filter)
	if err != nil {
		s.serverError(w, "list posts", err)
		return
	}
	categories, err := s.db.ListCategories()
	if err != nil {
		s.serverError(w, "list categories", err)
		return
	}

	s.render(w, http.StatusOK, "blog", blogData{
		Meta:       s.meta(),
		Posts:      posts,
		Categories: categories,
		Category:   filter.Category,
		Query:      filter.Query,
		Pagination: pg,
	})
}

type blogPostData struct {
	Meta     siteMeta
	Post     *store.Post
	Body     template.HTML
	Headings []markdown.Heading
	Prev     *store.Post
	Next     *store.Post
}

func (s *Server) handleBlogPost(w http.ResponseWriter, r *http.Request) {
	post, err := s.db.GetPostBySlug(r.PathValue("slug"))
	if err != nil {
		s.serverError(w, "load post", err)
		return
	}
	if post == nil {
		s.handleNotFound(w, r)
		return
	}

	body, err := s.renderer.Render(post.Content)
	if err != nil {
		s.serverError(w, "render post", err)
		return
	}
	prev, next, err := s.db.AdjacentPosts(post)
	if err != nil {
		s.serverError(w, "load adjacent posts", err)
		return
	}

	s.render(w, http.StatusOK, "blog_post", blogPostData{
		Meta:     s.meta(),
		Post:     post,
		Body:     template.HTML(body),
		Headings: markdown.ExtractHeadings(post.Content),
		Prev:     prev,
		Next:     next,
	})
}

type projectsData struct {
	Meta     siteMeta
	Projects []store.Project
}

func (s *Server) handleProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.db.ListProjects()
	if err != nil {
		s.serverError(w, "list projects", err)
		return
	}
	s.render(w, http.StatusOK, "projects", projectsData{Meta: s.meta(), Projects: projects})
}

type projectData struct {
	Meta    siteMeta
	Project *store.Project
	Body    template.HTML
}

func (s *Server) handleProject(w http.ResponseWriter, r *http.Request) {
	project, err := s.db.GetProjectBySlug(r.PathValue("slug"))
	if err != nil {
		s.serverError(w, "load project", err)
		return
	}
	if project == nil {
		s.handleNotFound(w, r)
		return
	}
	body, err := s.renderer.Render(project.Content)
	if err != nil {
		s.serverError(w, "render project", err)
		return
	}
	s.render(w, http.StatusOK, "project", projectData{
		Meta:    s.meta(),
		Project: project,
		Body:    template.HTML(body),
	})
}

type techStackData struct {
	Meta       siteMeta
	Categories []store.TechCategory
}

func (s *Server) handleTechStack(w http.ResponseWriter, r *http.Request) {
	categories, err := s.db.ListTechCategories()
	if err != nil {
		s.serverError(w, "list tech stacks", err)
		return
	}
	s.render(w, http.StatusOK, "techstack", techStackData{Meta: s.meta(), Categories: categories})
}

type aboutData struct {
	Meta siteMeta
	Body template.HTML
}

func (s *Server) handleAbout(w http.ResponseWriter, r *http.Request) {
	body, err := s.aboutContent()
	if err != nil {
		s.serverError(w, "load about page", err)
		return
	}
	s.render(w, http.StatusOK, "about", aboutData{Meta: s.meta(), Body: body})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusNotFound, "notfound", struct{ Meta siteMeta }{s.meta()})
}
