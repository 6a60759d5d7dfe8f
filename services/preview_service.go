package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"

	config "github.com/tutorpress/tutorpress-api/configs"
)

// PreviewRenderer turns a certificate template plus course details into a
// PDF preview and uploads it, returning the hosted URL.
type PreviewRenderer struct{}

func NewPreviewRenderer() *PreviewRenderer {
	return &PreviewRenderer{}
}

var previewTmpl = template.Must(template.New("certificate_preview").Parse(`<!DOCTYPE html>
<html>
<head>
<style>
  @page { margin: 0; }
  body {
    margin: 0;
    font-family: Georgia, serif;
    {{if .BackgroundSrc}}background: url('{{.BackgroundSrc}}') no-repeat center / cover;{{end}}
  }
  .certificate {
    text-align: center;
    padding: {{if eq .Orientation "portrait"}}160px 60px{{else}}90px 120px{{end}};
  }
  h1 { font-size: 42px; margin-bottom: 8px; }
  .course { font-size: 30px; margin: 36px 0 8px; }
  .instructor { font-size: 18px; color: #555; }
  .date { margin-top: 48px; font-size: 14px; color: #777; }
</style>
</head>
<body>
<div class="certificate">
  <h1>Certificate of Completion</h1>
  <p>This certifies the completion of</p>
  <p class="course">{{.CourseTitle}}</p>
  <p class="instructor">Instructor: {{.InstructorName}}</p>
  <p class="date">{{.Date}}</p>
</div>
</body>
</html>`))

func (r *PreviewRenderer) RenderAndUpload(ctx context.Context, tpl CertificateTemplate, courseID uuid.UUID, courseTitle, instructorName string) (string, error) {
	html, err := r.buildHTML(tpl, courseTitle, instructorName)
	if err != nil {
		return "", fmt.Errorf("rendering preview HTML: %w", err)
	}

	pdfBytes, err := generatePDFFromHTML(ctx, html, tpl.Orientation)
	if err != nil {
		return "", fmt.Errorf("generating preview PDF: %w", err)
	}

	return uploadPreview(ctx, pdfBytes, courseID.String())
}

func (r *PreviewRenderer) buildHTML(tpl CertificateTemplate, courseTitle, instructorName string) (string, error) {
	data := struct {
		CourseTitle    string
		InstructorName string
		Orientation    string
		BackgroundSrc  string
		Date           string
	}{
		CourseTitle:    courseTitle,
		InstructorName: instructorName,
		Orientation:    tpl.Orientation,
		BackgroundSrc:  tpl.BackgroundSrc,
		Date:           time.Now().Format("January 2, 2006"),
	}

	var rendered bytes.Buffer
	if err := previewTmpl.Execute(&rendered, data); err != nil {
		return "", err
	}
	return rendered.String(), nil
}

func generatePDFFromHTML(parent context.Context, htmlContent, orientation string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(parent)
	defer cancel()

	landscape := orientation != "portrait"

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithLandscape(landscape).
				Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

func uploadPreview(parent context.Context, fileBytes []byte, courseID string) (string, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(parent, 10*time.Second)
	defer cancel()

	uploadParams := uploader.UploadParams{
		PublicID:     fmt.Sprintf("certificate_previews/%s_%s", courseID, uuid.New().String()),
		Folder:       "tutorpress_certificate_previews",
		ResourceType: "raw",
	}

	uploadResult, err := cld.Upload.Upload(ctx, bytes.NewReader(fileBytes), uploadParams)
	if err != nil {
		return "", err
	}

	return uploadResult.SecureURL, nil
}
