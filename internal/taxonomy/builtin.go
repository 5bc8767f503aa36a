// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package taxonomy

// Default returns the built-in term taxonomy covering income statement,
// balance sheet and cash flow line items across IndAS, US GAAP and
// IFRS vocabularies. Priorities are tie-break weights; parent links
// form the specificity hierarchy used by hierarchical resolution.
func Default() []TermDefinition {
	return Normalize([]TermDefinition{
		// ----- Income statement -----
		{
			CanonicalKey: "total_revenue",
			DisplayLabel: "Total Revenue",
			Category:     CategoryIncomeStatement,
			KeywordSets: map[string][]string{
				StandardUnified: {
					"total revenue", "revenue", "turnover", "gross revenue",
					"operating revenue", "net revenue", "net sales", "total net sales",
					"sales revenue", "income from operations",
				},
				StandardIndAS: {"revenue from operations", "sale of goods", "rendering of services"},
				StandardGAAP:  {"net revenues", "product revenue", "service revenue"},
				StandardIFRS:  {"revenue from contracts with customers", "revenue from ordinary activities"},
			},
			Priority:      2.2,
			RequiresValue: true,
		},
		{
			CanonicalKey: "cost_of_goods_sold",
			DisplayLabel: "Cost of Goods Sold",
			Category:     CategoryIncomeStatement,
			KeywordSets: map[string][]string{
				StandardUnified: {
					"cost of goods sold", "cost of sales", "cost of revenue",
					"direct costs", "cost of products sold", "manufacturing cost",
				},
				StandardIndAS: {"cost of materials consumed", "purchases of stock in trade", "raw materials consumed"},
			},
			Acronyms:       []string{"cogs"},
			SignConvention: SignNegative,
			Priority:       2.0,
			RequiresValue:  true,
		},
		{
			CanonicalKey: "gross_profit",
			DisplayLabel: "Gross Profit",
			Category:     CategoryIncomeStatement,
			KeywordSets: map[string][]string{
				StandardUnified: {"gross profit", "gross margin", "gross income", "trading profit", "gross surplus"},
			},
			Priority:      2.0,
			RequiresValue: true,
		},
		{
			CanonicalKey: "operating_profit",
			DisplayLabel: "Operating Profit",
			Category:     CategoryIncomeStatement,
			KeywordSets: map[string][]string{
				StandardUnified: {
					"operating profit", "operating income", "profit from operations",
					"earnings before interest and tax", "operating earnings",
					"profit before finance costs",
				},
			},
			Acronyms:      []string{"ebit"},
			Priority:      2.2,
			RequiresValue: true,
		},
		{
			CanonicalKey: "ebitda",
			DisplayLabel: "EBITDA",
			Category:     CategoryIncomeStatement,
			KeywordSets: map[string][]string{
				StandardUnified: {
					"earnings before interest tax depreciation amortization",
					"operating profit before depreciation", "adjusted ebitda",
				},
			},
			Acronyms:      []string{"ebitda"},
			Priority:      2.3,
			RequiresValue: true,
		},
		{
			CanonicalKey: "depreciation_amortization",
			DisplayLabel: "Depreciation and Amortization",
			Category:     CategoryIncomeStatement,
			KeywordSets: map[string][]string{
				StandardUnified: {
					"depreciation and amortization", "depreciation expense",
					"amortization expense", "amortization",
				},
				StandardIndAS: {"depreciation and amortisation expense", "amortisation of intangible assets"},
			},
			SignConvention: SignNegative,
			Priority:       2.0,
			RequiresValue:  true,
		},
		{
			CanonicalKey: "finance_costs",
			DisplayLabel: "Finance Costs",
			Category:     CategoryIncomeStatement,
			KeywordSets: map[string][]string{
				StandardUnified: {
					"finance costs", "finance cost", "interest expense", "borrowing costs",
					"interest on borrowings", "interest on term loans",
				},
			},
			SignConvention: SignNegative,
			Priority:       2.0,
			RequiresValue:  true,
		},
		{
			CanonicalKey: "employee_benefits_expense",
			DisplayLabel: "Employee Benefits Expense",
			Category:     CategoryIncomeStatement,
			KeywordSets: map[string][]string{
				StandardUnified: {
					"employee benefits expense", "employee benefit expense", "employee cost",
					"staff cost", "personnel expenses", "salaries and wages", "payroll expense",
				},
			},
			SignConvention: SignNegative,
			Priority:       1.8,
			RequiresValue:  true,
		},
		{
			CanonicalKey: "other_income",
			DisplayLabel: "Other Income",
			Category:     CategoryIncomeStatement,
			KeywordSets: map[string][]string{
				StandardUnified: {
					"other income", "other operating income", "non operating income",
					"sundry income", "miscellaneous income", "interest income", "dividend income",
				},
			},
			Priority:      1.5,
			RequiresValue: true,
		},
		{
			CanonicalKey: "profit_before_tax",
			DisplayLabel: "Profit Before Tax",
			Category:     CategoryIncomeStatement,
			KeywordSets: map[string][]string{
				StandardUnified: {
					"profit before tax", "profit before taxation", "income before taxes",
					"pretax income", "earnings before tax", "pre tax profit",
				},
			},
			Acronyms:      []string{"pbt"},
			Priority:      2.0,
			RequiresValue: true,
		},
		{
			CanonicalKey: "tax_expense",
			DisplayLabel: "Tax Expense",
			Category:     CategoryIncomeStatement,
			KeywordSets: map[string][]string{
				StandardUnified: {
					"tax expense", "income tax expense", "current tax", "deferred tax",
					"provision for taxation", "tax provision", "provision for income taxes",
				},
			},
			SignConvention: SignNegative,
			Priority:       2.0,
			RequiresValue:  true,
		},
		{
			CanonicalKey: "profit_after_tax",
			DisplayLabel: "Profit After Tax",
			Category:     CategoryIncomeStatement,
			KeywordSets: map[string][]string{
				StandardUnified: {
					"profit after tax", "profit for the year", "profit for the period",
					"net profit", "net income", "net earnings",
					"profit attributable to owners",
				},
			},
			Acronyms:      []string{"pat"},
			Priority:      2.2,
			RequiresValue: true,
		},
		{
			CanonicalKey: "earnings_per_share",
			DisplayLabel: "Earnings Per Share",
			Category:     CategoryIncomeStatement,
			KeywordSets: map[string][]string{
				StandardUnified: {
					"earnings per share", "basic earnings per share",
					"diluted earnings per share", "earnings per equity share",
				},
			},
			Acronyms:      []string{"eps"},
			Priority:      1.8,
			RequiresValue: true,
		},

		// ----- Balance sheet: assets -----
		{
			CanonicalKey: "total_assets",
			DisplayLabel: "Total Assets",
			Category:     CategoryAssets,
			KeywordSets: map[string][]string{
				StandardUnified: {"total assets", "assets total", "gross assets", "assets"},
			},
			Priority:      2.0,
			RequiresValue: true,
		},
		{
			CanonicalKey: "total_non_current_assets",
			DisplayLabel: "Total Non-Current Assets",
			Category:     CategoryAssets,
			KeywordSets: map[string][]string{
				StandardUnified: {
					"total non current assets", "non current assets",
					"total long term assets", "long term assets",
				},
				StandardGAAP: {"fixed assets total", "capital assets"},
			},
			ParentKey:     "total_assets",
			Priority:      2.0,
			RequiresValue: true,
		},
		{
			CanonicalKey: "total_current_assets",
			DisplayLabel: "Total Current Assets",
			Category:     CategoryAssets,
			KeywordSets: map[string][]string{
				StandardUnified: {"total current assets", "current assets", "current assets total"},
			},
			ParentKey:     "total_assets",
			Priority:      1.8,
			RequiresValue: true,
		},
		{
			CanonicalKey: "property_plant_equipment",
			DisplayLabel: "Property, Plant and Equipment",
			Category:     CategoryAssets,
			KeywordSets: map[string][]string{
				StandardUnified: {
					"property plant and equipment", "property plant equipment",
					"fixed assets", "tangible assets", "land and buildings",
					"plant and machinery", "net property plant and equipment",
				},
				StandardGAAP: {"property and equipment net"},
			},
			Acronyms:      []string{"ppe"},
			ParentKey:     "total_non_current_assets",
			Priority:      2.0,
			RequiresValue: true,
		},
		{
			CanonicalKey: "capital_work_in_progress",
			DisplayLabel: "Capital Work in Progress",
			Category:     CategoryAssets,
			KeywordSets: map[string][]string{
				StandardUnified: {"capital work in progress", "assets under construction", "construction in progress"},
			},
			Acronyms:      []string{"cwip"},
			ParentKey:     "property_plant_equipment",
			Priority:      2.0,
			RequiresValue: true,
		},
		{
			CanonicalKey: "intangible_assets",
			DisplayLabel: "Intangible Assets",
			Category:     CategoryAssets,
			KeywordSets: map[string][]string{
				StandardUnified: {
					"intangible assets", "patents", "trademarks", "licenses",
					"net intangible assets", "acquired intangible assets",
				},
			},
			ParentKey:     "total_non_current_assets",
			Priority:      2.0,
			RequiresValue: true,
		},
		{
			CanonicalKey: "goodwill",
			DisplayLabel: "Goodwill",
			Category:     CategoryAssets,
			KeywordSets: map[string][]string{
				StandardUnified: {"goodwill", "goodwill net", "acquired goodwill", "goodwill on consolidation"},
			},
			ParentKey:     "intangible_assets",
			Priority:      2.0,
			RequiresValue: true,
		},
		{
			CanonicalKey: "inventories",
			DisplayLabel: "Inventories",
			Category:     CategoryAssets,
			KeywordSets: map[string][]string{
				StandardUnified: {
					"inventories", "inventory", "stock in trade", "raw materials",
					"finished goods", "stores and spares", "merchandise inventory",
				},
			},
			ParentKey:     "total_current_assets",
			Priority:      2.0,
			RequiresValue: true,
		},
		{
			CanonicalKey: "trade_receivables",
			DisplayLabel: "Trade Receivables",
			Category:     CategoryAssets,
			KeywordSets: map[string][]string{
				StandardUnified: {
					"trade receivables", "accounts receivable", "receivables",
					"bills receivable", "accounts receivable net",
				},
				StandardIndAS: {"sundry debtors", "debtors"},
			},
			ParentKey:     "total_current_assets",
			Priority:      1.8,
			RequiresValue: true,
		},
		{
			CanonicalKey: "cash_and_equivalents",
			DisplayLabel: "Cash and Cash Equivalents",
			Category:     CategoryAssets,
			KeywordSets: map[string][]string{
				StandardUnified: {
					"cash and cash equivalents", "cash and bank balances", "bank balances",
					"cash on hand", "cash equivalents", "cash",
				},
			},
			ParentKey:     "total_current_assets",
			Priority:      1.8,
			RequiresValue: true,
		},

		// ----- Balance sheet: liabilities -----
		{
			CanonicalKey: "total_liabilities",
			DisplayLabel: "Total Liabilities",
			Category:     CategoryLiabilities,
			KeywordSets: map[string][]string{
				StandardUnified: {"total liabilities", "liabilities total", "liabilities"},
			},
			Priority:      1.8,
			RequiresValue: true,
		},
		{
			CanonicalKey: "total_current_liabilities",
			DisplayLabel: "Total Current Liabilities",
			Category:     CategoryLiabilities,
			KeywordSets: map[string][]string{
				StandardUnified: {"total current liabilities", "current liabilities", "current liabilities total"},
			},
			ParentKey:     "total_liabilities",
			Priority:      1.8,
			RequiresValue: true,
		},
		{
			CanonicalKey: "total_non_current_liabilities",
			DisplayLabel: "Total Non-Current Liabilities",
			Category:     CategoryLiabilities,
			KeywordSets: map[string][]string{
				StandardUnified: {
					"total non current liabilities", "non current liabilities",
					"long term liabilities",
				},
			},
			ParentKey:     "total_liabilities",
			Priority:      1.8,
			RequiresValue: true,
		},
		{
			CanonicalKey: "borrowings",
			DisplayLabel: "Borrowings",
			Category:     CategoryLiabilities,
			KeywordSets: map[string][]string{
				StandardUnified: {
					"borrowings", "term loans", "bank borrowings", "long term debt",
					"short term debt", "total debt", "notes payable", "debentures",
				},
			},
			ParentKey:     "total_liabilities",
			Priority:      2.0,
			RequiresValue: true,
		},
		{
			CanonicalKey: "trade_payables",
			DisplayLabel: "Trade Payables",
			Category:     CategoryLiabilities,
			KeywordSets: map[string][]string{
				StandardUnified: {
					"trade payables", "accounts payable", "bills payable",
					"payables to suppliers",
				},
				StandardIndAS: {"sundry creditors", "creditors"},
			},
			ParentKey:     "total_current_liabilities",
			Priority:      1.8,
			RequiresValue: true,
		},
		{
			CanonicalKey: "provisions",
			DisplayLabel: "Provisions",
			Category:     CategoryLiabilities,
			KeywordSets: map[string][]string{
				StandardUnified: {
					"provisions", "provision for doubtful debts", "provision for employee benefits",
					"provision for warranties", "long term provisions", "short term provisions",
				},
			},
			ParentKey:      "total_liabilities",
			SignConvention: SignContextual,
			Priority:       1.8,
			RequiresValue:  true,
		},

		// ----- Balance sheet: equity -----
		{
			CanonicalKey: "total_equity",
			DisplayLabel: "Total Equity",
			Category:     CategoryEquity,
			KeywordSets: map[string][]string{
				StandardUnified: {
					"total equity", "shareholders equity", "shareholders funds",
					"stockholders equity", "net worth", "owners equity", "total shareholders equity",
				},
			},
			Priority:      2.0,
			RequiresValue: true,
		},
		{
			CanonicalKey: "share_capital",
			DisplayLabel: "Share Capital",
			Category:     CategoryEquity,
			KeywordSets: map[string][]string{
				StandardUnified: {
					"share capital", "equity share capital", "issued capital",
					"paid up capital", "common stock", "ordinary shares",
				},
			},
			ParentKey:     "total_equity",
			Priority:      1.8,
			RequiresValue: true,
		},
		{
			CanonicalKey: "retained_earnings",
			DisplayLabel: "Retained Earnings",
			Category:     CategoryEquity,
			KeywordSets: map[string][]string{
				StandardUnified: {
					"retained earnings", "accumulated profits", "reserves and surplus",
					"accumulated deficit", "undistributed profits",
				},
			},
			ParentKey:      "total_equity",
			SignConvention: SignContextual,
			Priority:       1.8,
			RequiresValue:  true,
		},
		{
			CanonicalKey: "non_controlling_interest",
			DisplayLabel: "Non-Controlling Interest",
			Category:     CategoryEquity,
			KeywordSets: map[string][]string{
				StandardUnified: {
					"non controlling interests", "non controlling interest", "minority interest",
				},
			},
			Acronyms:      []string{"nci"},
			ParentKey:     "total_equity",
			Priority:      1.8,
			RequiresValue: true,
		},

		// ----- Cash flow -----
		{
			CanonicalKey: "operating_cash_flow",
			DisplayLabel: "Cash Flow from Operating Activities",
			Category:     CategoryCashFlow,
			KeywordSets: map[string][]string{
				StandardUnified: {
					"net cash from operating activities", "cash flow from operating activities",
					"cash generated from operations", "net cash provided by operating activities",
					"operating cash flow",
				},
			},
			Acronyms:      []string{"ocf", "cfo"},
			Priority:      2.2,
			RequiresValue: true,
		},
		{
			CanonicalKey: "investing_cash_flow",
			DisplayLabel: "Cash Flow from Investing Activities",
			Category:     CategoryCashFlow,
			KeywordSets: map[string][]string{
				StandardUnified: {
					"net cash used in investing activities", "cash flow from investing activities",
					"net cash from investing activities", "investing cash flow",
				},
			},
			SignConvention: SignContextual,
			Priority:       2.0,
			RequiresValue:  true,
		},
		{
			CanonicalKey: "financing_cash_flow",
			DisplayLabel: "Cash Flow from Financing Activities",
			Category:     CategoryCashFlow,
			KeywordSets: map[string][]string{
				StandardUnified: {
					"net cash used in financing activities", "cash flow from financing activities",
					"net cash from financing activities", "financing cash flow",
				},
			},
			SignConvention: SignContextual,
			Priority:       2.0,
			RequiresValue:  true,
		},
		{
			CanonicalKey: "capital_expenditure",
			DisplayLabel: "Capital Expenditure",
			Category:     CategoryCashFlow,
			KeywordSets: map[string][]string{
				StandardUnified: {
					"purchase of property plant and equipment", "capital expenditure",
					"payments for acquisition of property plant and equipment",
					"additions to property plant and equipment",
				},
			},
			Acronyms:       []string{"capex"},
			SignConvention: SignNegative,
			Priority:       2.0,
			RequiresValue:  true,
		},
		{
			CanonicalKey: "dividends_paid",
			DisplayLabel: "Dividends Paid",
			Category:     CategoryCashFlow,
			KeywordSets: map[string][]string{
				StandardUnified: {
					"dividends paid", "dividend paid", "payment of dividends",
					"dividends paid to shareholders",
				},
			},
			SignConvention: SignNegative,
			Priority:       1.8,
			RequiresValue:  true,
		},
	})
}
