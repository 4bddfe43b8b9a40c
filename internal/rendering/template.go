package rendering

// pageTemplate is the fixed page skeleton. The CSS, section order and
// conditional blocks are part of the published page format.
const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <style>
        * {
            margin: 0;
            padding: 0;
            box-sizing: border-box;
        }

        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
            background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
            min-height: 100vh;
            padding: 20px;
        }

        .container {
            max-width: 1200px;
            margin: 0 auto;
        }

        .header {
            background: white;
            border-radius: 12px;
            padding: 30px;
            margin-bottom: 20px;
            box-shadow: 0 4px 6px rgba(0, 0, 0, 0.1);
        }

        .header h1 {
            color: #333;
            margin-bottom: 10px;
            font-size: 28px;
        }

        .header .subtitle {
            color: #666;
            font-size: 14px;
        }

        .main-content {
            background: white;
            border-radius: 12px;
            padding: 30px;
            box-shadow: 0 4px 6px rgba(0, 0, 0, 0.1);
            margin-bottom: 20px;
        }

        .section-title {
            font-size: 20px;
            color: #333;
            margin-bottom: 20px;
            padding-bottom: 10px;
            border-bottom: 2px solid #667eea;
        }

        .summary {
            background: #f8f9fa;
            padding: 20px;
            border-radius: 8px;
            margin-bottom: 30px;
            line-height: 1.8;
            color: #333;
        }

        .news-grid {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(300px, 1fr));
            gap: 20px;
            margin-bottom: 30px;
        }

        .news-card {
            background: #f8f9fa;
            border-radius: 8px;
            padding: 20px;
            transition: transform 0.2s, box-shadow 0.2s;
        }

        .news-card:hover {
            transform: translateY(-2px);
            box-shadow: 0 4px 12px rgba(0, 0, 0, 0.15);
        }

        .news-card h3 {
            color: #333;
            margin-bottom: 10px;
            font-size: 16px;
        }

        .news-card .source {
            color: #667eea;
            font-size: 12px;
            margin-bottom: 10px;
        }

        .news-card .summary {
            background: transparent;
            padding: 0;
            margin-bottom: 10px;
            font-size: 14px;
            line-height: 1.6;
        }

        .news-card .impact {
            background: #e8f5e9;
            padding: 10px;
            border-radius: 4px;
            font-size: 13px;
            color: #2e7d32;
        }

        .news-card .link {
            margin-top: 10px;
        }

        .news-card .link a {
            color: #667eea;
            text-decoration: none;
            font-size: 13px;
        }

        .news-card .link a:hover {
            text-decoration: underline;
        }

        .trends {
            background: #fff3e0;
            padding: 20px;
            border-radius: 8px;
        }

        .trends ul {
            list-style: none;
            padding-left: 0;
        }

        .trends li {
            padding: 8px 0;
            padding-left: 24px;
            position: relative;
            color: #333;
        }

        .trends li:before {
            content: "→";
            position: absolute;
            left: 0;
            color: #ff9800;
            font-weight: bold;
        }

        .footer {
            text-align: center;
            color: white;
            padding: 20px;
            font-size: 14px;
        }

        .error {
            background: #ffebee;
            color: #c62828;
            padding: 20px;
            border-radius: 8px;
            text-align: center;
        }

        @media (max-width: 768px) {
            .news-grid {
                grid-template-columns: 1fr;
            }
        }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>🤖 {{.Title}}</h1>
            <p class="subtitle">Last updated: {{.UpdateTime}}</p>
        </div>
{{- if .Error}}

        <div class="main-content">
            <div class="error">
                <h2>⚠️ Failed to load data</h2>
                <p>{{.Error}}</p>
            </div>
        </div>
{{- else}}

        <div class="main-content">
            <h2 class="section-title">📊 Today's Overview</h2>
            <div class="summary">{{.Summary}}</div>

            <h2 class="section-title">📰 Top News</h2>
            <div class="news-grid">
{{- range .News}}
                <div class="news-card">
                    <h3>{{.Title}}</h3>
                    <p class="source">📍 {{.Source}}</p>
                    <p class="summary">{{.Summary}}</p>
                    <div class="impact"><strong>Impact analysis:</strong> {{.Impact}}</div>
{{- if .URL}}
                    <p class="link"><a href="{{.URL}}" target="_blank">View details →</a></p>
{{- end}}
                </div>
{{- end}}
            </div>

            <h2 class="section-title">📈 Trend Insights</h2>
            <div class="trends">
                <ul>
{{- range .Trends}}
                    <li>{{.}}</li>
{{- end}}
                </ul>
            </div>
        </div>
{{- end}}

        <div class="footer">
            <p>{{.Footer}}</p>
        </div>
    </div>
</body>
</html>
`
