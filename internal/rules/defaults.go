package rules

import "github.com/supportdesk/ticket-triage/internal/domain"

// Default returns the built-in rule set.
func Default() *Rules {
	r, err := New(defaultCategories(), defaultTemplates())
	if err != nil {
		panic("rules: invalid defaults: " + err.Error())
	}
	return r
}

func defaultCategories() []CategoryRule {
	return []CategoryRule{
		{Category: domain.CategoryTechnical, Keywords: []string{"error", "bug", "broken", "failed", "crash", "technical"}},
		{Category: domain.CategoryBilling, Keywords: []string{"payment", "charge", "bill", "refund", "price", "cost", "money"}},
		{Category: domain.CategoryAccount, Keywords: []string{"login", "password", "account", "profile", "access", "sign"}},
		{Category: domain.CategoryProduct, Keywords: []string{"feature", "product", "service", "quality", "performance"}},
		{Category: domain.CategoryShipping, Keywords: []string{"delivery", "shipping", "ship", "package", "track", "arrive"}},
	}
}

func defaultTemplates() map[domain.Category][]string {
	return map[domain.Category][]string{
		domain.CategoryTechnical: {
			"Our technical team is looking into the issue you reported. We'll update you as soon as we have more information.",
			"We apologize for the technical difficulties. Our engineers are working on a fix.",
			"Thank you for reporting this technical issue. We're investigating and will get back to you shortly.",
		},
		domain.CategoryBilling: {
			"Our billing department is reviewing your payment concern and will reach out with a resolution.",
			"We've noted your billing query and are processing it with priority.",
			"Thank you for bringing this billing matter to our attention. We'll resolve it as quickly as possible.",
		},
		domain.CategoryAccount: {
			"We're addressing your account-related concern and will ensure everything is working correctly.",
			"Our account specialists are looking into this issue and will help you regain access.",
			"We understand the importance of account security and are working to resolve your issue.",
		},
		domain.CategoryProduct: {
			"Thank you for your feedback about our product. We're taking your suggestions into consideration.",
			"We appreciate your insights about our service and will use them to improve.",
			"Your product experience matters to us. We're addressing the points you've raised.",
		},
		domain.CategoryShipping: {
			"We're tracking your shipment and will update you on its status.",
			"Our shipping department is looking into the delivery issue you reported.",
			"We apologize for any shipping inconvenience and are working to resolve it quickly.",
		},
		domain.CategoryGeneral: {
			"Thank you for contacting our support team. We're reviewing your inquiry.",
			"We appreciate you reaching out to us. Our team is working on addressing your concern.",
			"We've received your message and are working on the best solution for you.",
		},
	}
}
