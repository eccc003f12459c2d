package notify

import (
	"testing"

	"github.com/meki101/mekitech.co.ke/internal/config"
	"github.com/meki101/mekitech.co.ke/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var site = config.SiteConfig{
	CompanyName:  "MekiTech Solutions",
	Email:        "hello@mekitech.com",
	Phone:        "+254 700 000 000",
	DashboardURL: "https://app.mekitech.com/admin/inquiries",
}

func TestBuild(t *testing.T) {
	b := NewBuilder(site)
	e, err := b.Build(model.InquiryEnvelope{
		ID:                 "01J9ZK3",
		ClientName:         "Otieno",
		ClientEmail:        "otieno@example.com",
		ProjectDescription: "Inventory system for 3 shops",
	})
	require.NoError(t, err)

	assert.Equal(t, "otieno@example.com", e.Client.To)
	assert.Contains(t, e.Client.HTML, "Hi Otieno,")
	assert.Contains(t, e.Client.HTML, "Inventory system for 3 shops")
	assert.Contains(t, e.Client.HTML, "+254 700 000 000")

	assert.Equal(t, "hello@mekitech.com", e.Admin.To)
	assert.Contains(t, e.Admin.Subject, "Otieno")
	assert.Contains(t, e.Admin.HTML, "01J9ZK3")
	assert.Contains(t, e.Admin.HTML, `href="https://app.mekitech.com/admin/inquiries"`)
}

func TestBuildEscapesInput(t *testing.T) {
	b := NewBuilder(site)
	e, err := b.Build(model.InquiryEnvelope{
		ClientName:         `<script>alert(1)</script>`,
		ProjectDescription: `Tom & Jerry's "shop"`,
	})
	require.NoError(t, err)
	assert.NotContains(t, e.Client.HTML, "<script>")
	assert.Contains(t, e.Client.HTML, "&lt;script&gt;")
	assert.Contains(t, e.Admin.HTML, "Tom &amp; Jerry")
}
