package locale

// frenchGeography maps dataset geography names to their French form.
var frenchGeography = map[string]string{
	"Victoria, Census metropolitan area (CMA)":                         "Victoria, région métropolitaine de recensement (RMR)",
	"Vancouver, Census metropolitan area (CMA)":                        "Vancouver, région métropolitaine de recensement (RMR)",
	"Nanaimo, Census metropolitan area (CMA)":                          "Nanaimo, région métropolitaine de recensement (RMR)",
	"Kelowna, Census metropolitan area (CMA)":                          "Kelowna, région métropolitaine de recensement (RMR)",
	"Kamloops, Census metropolitan area (CMA)":                         "Kamloops, région métropolitaine de recensement (RMR)",
	"Chilliwack, Census metropolitan area (CMA)":                       "Chilliwack, région métropolitaine de recensement (RMR)",
	"Abbotsford - Mission, Census metropolitan area (CMA)":             "Abbotsford - Mission, région métropolitaine de recensement (RMR)",
	"Red Deer, Census metropolitan area (CMA)":                         "Red Deer, région métropolitaine de recensement (RMR)",
	"Lethbridge, Census metropolitan area (CMA)":                       "Lethbridge, région métropolitaine de recensement (RMR)",
	"Calgary, Census metropolitan area (CMA)":                          "Calgary, région métropolitaine de recensement (RMR)",
	"Saskatoon, Census metropolitan area (CMA)":                        "Saskatoon, région métropolitaine de recensement (RMR)",
	"Regina, Census metropolitan area (CMA)":                           "Regina, région métropolitaine de recensement (RMR)",
	"Winnipeg, Census metropolitan area (CMA)":                         "Winnipeg, région métropolitaine de recensement (RMR)",
	"Windsor, Census metropolitan area (CMA)":                          "Windsor, région métropolitaine de recensement (RMR)",
	"Toronto, Census metropolitan area (CMA)":                          "Toronto, région métropolitaine de recensement (RMR)",
	"Thunder Bay, Census metropolitan area (CMA)":                      "Thunder Bay, région métropolitaine de recensement (RMR)",
	"St. Catharines - Niagara, Census metropolitan area (CMA)":         "St. Catharines - Niagara, région métropolitaine de recensement (RMR)",
	"Peterborough, Census metropolitan area (CMA)":                     "Peterborough, région métropolitaine de recensement (RMR)",
	"Ottawa - Gatineau (Ontario part), Census metropolitan area (CMA)": "Ottawa - Gatineau (partie ontarienne), région métropolitaine de recensement (RMR)",
	"Oshawa, Census metropolitan area (CMA)":                           "Oshawa, région métropolitaine de recensement (RMR)",
	"London, Census metropolitan area (CMA)":                           "London, région métropolitaine de recensement (RMR)",
	"Kitchener - Cambridge - Waterloo, Census metropolitan area (CMA)": "Kitchener - Cambridge - Waterloo, région métropolitaine de recensement (RMR)",
	"Kingston, Census metropolitan area (CMA)":                         "Kingston, région métropolitaine de recensement (RMR)",
	"Hamilton, Census metropolitan area (CMA)":                         "Hamilton, région métropolitaine de recensement (RMR)",
	"Guelph, Census metropolitan area (CMA)":                           "Guelph, région métropolitaine de recensement (RMR)",
	"Greater Sudbury, Census metropolitan area (CMA)":                  "Grand Sudbury, région métropolitaine de recensement (RMR)",
	"Brantford, Census metropolitan area (CMA)":                        "Brantford, région métropolitaine de recensement (RMR)",
	"Belleville - Quinte West, Census metropolitan area (CMA)":         "Belleville - Quinte West, région métropolitaine de recensement (RMR)",
	"Barrie, Census metropolitan area (CMA)":                           "Barrie, région métropolitaine de recensement (RMR)",
	"Trois-Rivières, Census metropolitan area (CMA)":                   "Trois-Rivières, région métropolitaine de recensement (RMR)",
	"Sherbrooke, Census metropolitan area (CMA)":                       "Sherbrooke, région métropolitaine de recensement (RMR)",
	"Saguenay, Census metropolitan area (CMA)":                         "Saguenay, région métropolitaine de recensement (RMR)",
	"Québec, Census metropolitan area (CMA)":                           "Québec, région métropolitaine de recensement (RMR)",
	"Ottawa - Gatineau (Quebec part), Census metropolitan area (CMA)":  "Ottawa - Gatineau (partie québécoise), région métropolitaine de recensement (RMR)",
	"Montréal, Census metropolitan area (CMA)":                         "Montréal, région métropolitaine de recensement (RMR)",
	"Drummondville, Census metropolitan area (CMA)":                    "Drummondville, région métropolitaine de recensement (RMR)",
	"Saint John, Census metropolitan area (CMA)":                       "Saint John, région métropolitaine de recensement (RMR)",
	"Moncton, Census metropolitan area (CMA)":                          "Moncton, région métropolitaine de recensement (RMR)",
	"Fredericton, Census metropolitan area (CMA)":                      "Fredericton, région métropolitaine de recensement (RMR)",
	"Halifax, Census metropolitan area (CMA)":                          "Halifax, région métropolitaine de recensement (RMR)",
	"St. John's, Census metropolitan area (CMA)":                       "St. John's, région métropolitaine de recensement (RMR)",
}

var frenchUnitTypes = map[string]string{
	"Apartment - 1 bedroom":  "Appartement - 1 chambre",
	"Apartment - 2 bedrooms": "Appartement - 2 chambres",
	"Room":                   "Chambre",
}
