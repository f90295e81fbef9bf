package document

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const timerLayout = "2006-01-02T15:04"

// Spacer heights are clamped to what the editor slider offers.
const (
	MinSpacerHeight = 10
	MaxSpacerHeight = 200
)

func (b *TopImageBlock) Validate() error { return nil }

func (b *BannerListBlock) Validate() error {
	errs := validation.Errors{}
	switch b.Layout {
	case "1", "2", "3", "4":
	default:
		errs["layout"] = validation.NewError(
			"salepage.block.banner_list.layout_invalid",
			"layout must be 1, 2, 3 or 4 columns")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (b *CouponListBlock) Validate() error { return nil }

func (b *CustomHTMLBlock) Validate() error { return nil }

func (b *SpacerBlock) Validate() error {
	errs := validation.Errors{}
	if b.Height < MinSpacerHeight || b.Height > MaxSpacerHeight {
		errs["height"] = validation.NewError(
			"salepage.block.spacer.height_range",
			"height must be between 10 and 200 pixels")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (b *TimerBannerBlock) Validate() error {
	errs := validation.Errors{}
	for _, item := range b.Banners {
		if item.StartTime != "" {
			if _, err := time.Parse(timerLayout, item.StartTime); err != nil {
				errs["startTime"] = validation.NewError(
					"salepage.block.timer_banner.start_invalid",
					"start time must look like 2006-01-02T15:04")
			}
		}
		if item.EndTime != "" {
			if _, err := time.Parse(timerLayout, item.EndTime); err != nil {
				errs["endTime"] = validation.NewError(
					"salepage.block.timer_banner.end_invalid",
					"end time must look like 2006-01-02T15:04")
			}
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (b *ProductGridBlock) Validate() error {
	errs := validation.Errors{}
	switch b.HeroMode {
	case HeroModeProduct, HeroModeBanner:
	default:
		errs["heroMode"] = validation.NewError(
			"salepage.block.product_grid.hero_mode_invalid",
			"hero mode must be product or banner")
	}
	if b.MobileCommentDuration <= 0 {
		errs["mobileCommentDuration"] = validation.NewError(
			"salepage.block.product_grid.comment_duration_invalid",
			"comment duration must be positive seconds")
	}
	if b.MobileCommentInterval < 0 {
		errs["mobileCommentInterval"] = validation.NewError(
			"salepage.block.product_grid.comment_interval_invalid",
			"comment interval must not be negative")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
