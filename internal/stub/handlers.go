package stub

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// noResumeText mirrors the real service's reply for analytics without a
// stored resume. Note it arrives as a successful result, not an error.
const noResumeText = "📄 Please upload your resume first."

var sampleJobs = []string{
	"Go Developer at Acme Corp (Remote)",
	"Backend Engineer at Initech (Hybrid, Austin)",
	"Platform Engineer at Hooli (Remote)",
	"Site Reliability Engineer at Pied Piper (On-site, SF)",
	"Data Engineer at Raviga Capital (Remote)",
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "Career AI Agent API",
	})
}

func (s *Server) handleChat(c *gin.Context) {
	input := strings.TrimSpace(c.PostForm("user_input"))
	if input == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "user_input is required"})
		return
	}

	var hasResume bool
	s.withSession(c, func(mem *sessionMemory) {
		hasResume = mem.ResumeText != ""
		mem.HistoryCount += 2
	})

	c.JSON(http.StatusOK, gin.H{"success": true, "response": chatReply(input, hasResume)})
}

func (s *Server) handleUploadResume(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "No file provided"})
		return
	}
	defer func() { _ = file.Close() }()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, file); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Failed to read file"})
		return
	}
	text := buf.String()
	if strings.TrimSpace(text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Could not extract text from file"})
		return
	}

	s.withSession(c, func(mem *sessionMemory) {
		mem.ResumeText = text
		mem.ResumeFile = header.Filename
	})

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    fmt.Sprintf("✅ Resume '%s' uploaded successfully!", header.Filename),
		"details":    fmt.Sprintf("Extracted %d characters", len(text)),
		"filename":   header.Filename,
		"has_resume": true,
	})
}

func (s *Server) handleAnalyzeMatch(c *gin.Context) {
	s.analysis(c, func(job string) string {
		return fmt.Sprintf(
			"**Match Score: 78%%**\n\n**Strengths:**\n- Solid backend fundamentals\n- Clear ownership of shipped projects\n\n**Gaps:**\n- The posting asks for Kubernetes exposure\n\n_Based on the description:_ %s",
			truncate(job, 80),
		)
	})
}

func (s *Server) handleSkillGaps(c *gin.Context) {
	s.analysis(c, func(job string) string {
		return fmt.Sprintf(
			"**Missing Skills:**\n- Kubernetes\n- Terraform\n- gRPC\n\n**Recommendation:** pick one gap and build a small public project with it.\n\n_Compared against:_ %s",
			truncate(job, 80),
		)
	})
}

func (s *Server) handleHeatmap(c *gin.Context) {
	s.analysis(c, func(job string) string {
		return fmt.Sprintf(
			"**Resume Heatmap**\n\n- Skills section: **strong** match\n- Experience: _moderate_ match\n- Education: low relevance\n\n_For:_ %s",
			truncate(job, 80),
		)
	})
}

// analysis wraps the three job-description endpoints, which share
// validation, the no-resume reply, and the success envelope.
func (s *Server) analysis(c *gin.Context, build func(job string) string) {
	job := strings.TrimSpace(c.PostForm("job_description"))
	if job == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Job description is required"})
		return
	}

	mem := s.snapshot(c)
	if mem.ResumeText == "" {
		c.JSON(http.StatusOK, gin.H{"success": true, "result": noResumeText})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "result": build(job)})
}

func (s *Server) handleAlternativeRoles(c *gin.Context) {
	mem := s.snapshot(c)
	if mem.ResumeText == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Upload resume first"})
		return
	}

	result := "**Roles worth a look:**\n1. Platform Engineer\n2. Site Reliability Engineer\n3. Developer Advocate\n\nEach leans on the systems experience already on your resume."
	c.JSON(http.StatusOK, gin.H{"success": true, "result": result})
}

func (s *Server) handleInterviewQuestions(c *gin.Context) {
	company := strings.TrimSpace(c.PostForm("company"))
	if company == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Company information is required"})
		return
	}
	role := strings.TrimSpace(c.PostForm("role"))
	if role == "" {
		role = "Software Engineer"
	}

	result := fmt.Sprintf(
		"**Practice questions for %s (%s):**\n1. Why do you want to work at %s?\n2. Walk me through a system you designed end to end.\n3. Tell me about a time you disagreed with a teammate.\n4. How do you decide what to test?\n5. What would you build in your first 90 days?",
		company, role, company,
	)
	c.JSON(http.StatusOK, gin.H{"success": true, "result": result})
}

func (s *Server) handleJobs(c *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	jobs := make([]string, 0, len(sampleJobs))
	for _, job := range sampleJobs {
		if query == "" || strings.Contains(strings.ToLower(job), query) {
			jobs = append(jobs, job)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"jobs":    jobs,
		"source":  "sample",
		"count":   len(jobs),
	})
}

func (s *Server) handleMemory(c *gin.Context) {
	mem := s.snapshot(c)

	var resumeText any
	if mem.ResumeText != "" {
		resumeText = mem.ResumeText
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"memory": gin.H{
			"resume_uploaded": mem.ResumeText != "",
			"resume_text":     resumeText,
			"resume_file":     mem.ResumeFile,
			"history_count":   mem.HistoryCount,
		},
		"summary": gin.H{
			"has_resume":    mem.ResumeText != "",
			"resume_length": len(mem.ResumeText),
			"history_count": mem.HistoryCount,
		},
	})
}

func (s *Server) handleClearMemory(c *gin.Context) {
	s.withSession(c, func(mem *sessionMemory) {
		*mem = sessionMemory{}
	})
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Memory cleared successfully"})
}

func (s *Server) handleClearResume(c *gin.Context) {
	s.withSession(c, func(mem *sessionMemory) {
		mem.ResumeText = ""
		mem.ResumeFile = ""
	})
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Resume cleared from memory"})
}

func chatReply(input string, hasResume bool) string {
	lower := strings.ToLower(input)
	switch {
	case strings.Contains(lower, "hello") || strings.Contains(lower, "hi "), lower == "hi":
		return "Hello! Ask me about roles, resumes, or interview prep."
	case strings.Contains(lower, "job"):
		return "Use the **job search** to browse openings, or paste a description and I'll score your resume against it."
	case !hasResume:
		return "I can give sharper answers once your resume is uploaded. Until then: " + genericAdvice(input)
	default:
		return genericAdvice(input)
	}
}

func genericAdvice(input string) string {
	return fmt.Sprintf(
		"On %q: lead with measurable outcomes, keep each answer under two minutes, and tie every example back to the role you want.",
		truncate(input, 60),
	)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
